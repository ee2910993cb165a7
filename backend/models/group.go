// Copyright (C) 2025 eternitymarket.io <dev@eternitymarket.io>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package models

// Group is a named chat group. Invariant: the creator is always a
// member; the store enforces this on create and update.
type Group struct {
	ID          string   `json:"id" db:"group_id"`
	Name        string   `json:"name" db:"name"`
	Members     []string `json:"members"`
	Creator     string   `json:"creator" db:"created_by"`
	UnreadCount int      `json:"unreadCount"`
}

// HasMember reports whether addr is in the member list.
func (g Group) HasMember(addr string) bool {
	for _, m := range g.Members {
		if m == addr {
			return true
		}
	}
	return false
}
