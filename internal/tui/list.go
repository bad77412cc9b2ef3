// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

// listCursor tracks the selected row of a page list.
type listCursor struct {
	idx int
}

func (c *listCursor) up() {
	if c.idx > 0 {
		c.idx--
	}
}

func (c *listCursor) down(n int) {
	if c.idx < n-1 {
		c.idx++
	}
}

// clamp keeps the cursor inside a list of n rows after a reload.
func (c *listCursor) clamp(n int) {
	if c.idx >= n {
		c.idx = n - 1
	}
	if c.idx < 0 {
		c.idx = 0
	}
}
