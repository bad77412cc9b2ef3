// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// StatsModuleAll selects every module in a statistics query.
const StatsModuleAll = "all"

// StatsQuery is a parsed GET /api/stats/{module} request.
type StatsQuery struct {
	Module string    `json:"module"`
	From   time.Time `json:"from"`
	To     time.Time `json:"to"`
	Filter string    `json:"filter,omitempty"`
}

// StatsResponse echoes the query and carries per-action counts.
type StatsResponse struct {
	StatsQuery
	Stats []ActionCount `json:"stats"`
	Total int64         `json:"total"`
}
