// Copyright (C) 2025 eternitymarket.io <dev@eternitymarket.io>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package models

// User is a registered wallet address with a display name. The address
// is the key; there is no separate account system.
type User struct {
	Address string `json:"address" db:"address"`
	Name    string `json:"name" db:"name"`
}
