// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"time"

	"github.com/MKhiriev/imperial-command/models"
	sq "github.com/Masterminds/squirrel"
)

const (
	usersTable        = "users"
	modulesTable      = "modules"
	apiKeysTable      = "api_keys"
	systemTable       = "system_settings"
	activityLogsTable = "activity_logs"
)

var (
	userColumns = []string{
		"id", "username", "email", "password", "name", "role", "rank", "image",
		"language", "theme", "perm_instagram", "perm_youtube", "perm_statistics",
		"last_login", "created_at", "updated_at",
	}
	moduleColumns      = []string{"id", "user_id", "name", "enabled", "settings", "created_at", "updated_at"}
	apiKeyColumns      = []string{"id", "user_id", "service", "key_hash", "prefix", "created_at"}
	systemColumns      = []string{"name", "value", "updated_at", "updated_by"}
	activityLogColumns = []string{"id", "user_id", "level", "module", "action", "message", "created_at"}
)

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

// ── users ────────────────────────────────────────────────────────────────────

func buildInsertUserQuery(b sq.StatementBuilderType, user models.User, now time.Time) (string, []any, error) {
	return b.Insert(usersTable).
		Columns(
			"username", "email", "password", "name", "role", "rank", "image",
			"language", "theme", "perm_instagram", "perm_youtube", "perm_statistics",
			"created_at", "updated_at",
		).
		Values(
			user.Username, user.Email, user.Password, user.Name, string(user.Role), string(user.Rank), user.Image,
			user.Language, user.Theme, user.Permissions.Instagram, user.Permissions.YouTube, user.Permissions.Statistics,
			now, now,
		).
		Suffix(returning(userColumns)).
		ToSql()
}

// buildInsertDefaultModulesQuery inserts one disabled module with empty
// settings per entry of models.DefaultModules.
func buildInsertDefaultModulesQuery(b sq.StatementBuilderType, userID int64, now time.Time) (string, []any, error) {
	q := b.Insert(modulesTable).Columns("user_id", "name", "enabled", "settings", "created_at", "updated_at")
	for _, name := range models.DefaultModules {
		q = q.Values(userID, string(name), false, string(models.EmptySettings), now, now)
	}
	return q.ToSql()
}

func buildSelectUserQuery(b sq.StatementBuilderType, where sq.Eq) (string, []any, error) {
	return b.Select(userColumns...).
		From(usersTable).
		Where(where).
		Limit(1).
		ToSql()
}

func buildListUsersQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select(userColumns...).
		From(usersTable).
		OrderBy("id").
		ToSql()
}

func buildCountUsersQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select("COUNT(*)").From(usersTable).ToSql()
}

// buildUpdateUserQuery overwrites every mutable column of the row with the
// values of user. Partial updates are merged by the caller.
func buildUpdateUserQuery(b sq.StatementBuilderType, user models.User, now time.Time) (string, []any, error) {
	return b.Update(usersTable).
		SetMap(map[string]any{
			"username":        user.Username,
			"email":           user.Email,
			"password":        user.Password,
			"name":            user.Name,
			"role":            string(user.Role),
			"rank":            string(user.Rank),
			"image":           user.Image,
			"language":        user.Language,
			"theme":           user.Theme,
			"perm_instagram":  user.Permissions.Instagram,
			"perm_youtube":    user.Permissions.YouTube,
			"perm_statistics": user.Permissions.Statistics,
			"updated_at":      now,
		}).
		Where(sq.Eq{"id": user.ID}).
		Suffix(returning(userColumns)).
		ToSql()
}

func buildUpdateLastLoginQuery(b sq.StatementBuilderType, id int64, at time.Time) (string, []any, error) {
	return b.Update(usersTable).
		Set("last_login", at).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildDeleteUserQuery(b sq.StatementBuilderType, id int64) (string, []any, error) {
	return b.Delete(usersTable).Where(sq.Eq{"id": id}).ToSql()
}

// ── modules ──────────────────────────────────────────────────────────────────

func buildListModulesQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return b.Select(moduleColumns...).
		From(modulesTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("id").
		ToSql()
}

func buildGetModuleQuery(b sq.StatementBuilderType, userID, moduleID int64) (string, []any, error) {
	return b.Select(moduleColumns...).
		From(modulesTable).
		Where(sq.Eq{"id": moduleID, "user_id": userID}).
		ToSql()
}

// buildUpdateModuleQuery updates the given columns of a module owned by
// userID. The owner is part of the predicate so a foreign row matches nothing.
func buildUpdateModuleQuery(b sq.StatementBuilderType, userID, moduleID int64, set map[string]any, now time.Time) (string, []any, error) {
	values := make(map[string]any, len(set)+1)
	for k, v := range set {
		values[k] = v
	}
	values["updated_at"] = now

	return b.Update(modulesTable).
		SetMap(values).
		Where(sq.Eq{"id": moduleID, "user_id": userID}).
		Suffix(returning(moduleColumns)).
		ToSql()
}

// ── api keys ─────────────────────────────────────────────────────────────────

func buildInsertAPIKeyQuery(b sq.StatementBuilderType, key models.APIKey, now time.Time) (string, []any, error) {
	return b.Insert(apiKeysTable).
		Columns("user_id", "service", "key_hash", "prefix", "created_at").
		Values(key.UserID, key.Service, key.KeyHash, key.Prefix, now).
		Suffix(returning(apiKeyColumns)).
		ToSql()
}

func buildListAPIKeysQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return b.Select(apiKeyColumns...).
		From(apiKeysTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("service").
		ToSql()
}

func buildCountAPIKeysQuery(b sq.StatementBuilderType, userID int64, service string) (string, []any, error) {
	return b.Select("COUNT(*)").
		From(apiKeysTable).
		Where(sq.Eq{"user_id": userID, "service": service}).
		ToSql()
}

func buildDeleteAPIKeyQuery(b sq.StatementBuilderType, userID int64, service string) (string, []any, error) {
	return b.Delete(apiKeysTable).
		Where(sq.Eq{"user_id": userID, "service": service}).
		ToSql()
}

// ── system settings ──────────────────────────────────────────────────────────

func buildGetSettingQuery(b sq.StatementBuilderType, name string) (string, []any, error) {
	return b.Select(systemColumns...).
		From(systemTable).
		Where(sq.Eq{"name": name}).
		ToSql()
}

// buildUpsertSettingQuery writes a setting row, replacing the existing one.
// ON CONFLICT ... DO UPDATE is understood by both PostgreSQL and SQLite.
func buildUpsertSettingQuery(b sq.StatementBuilderType, setting models.SystemSetting, now time.Time) (string, []any, error) {
	return b.Insert(systemTable).
		Columns(systemColumns...).
		Values(setting.Key, setting.Value, now, setting.UpdatedBy).
		Suffix("ON CONFLICT (name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at, updated_by = excluded.updated_by " +
			returning(systemColumns)).
		ToSql()
}

// ── activity logs ────────────────────────────────────────────────────────────

func buildInsertActivityLogQuery(b sq.StatementBuilderType, entry models.ActivityLog, now time.Time) (string, []any, error) {
	return b.Insert(activityLogsTable).
		Columns("user_id", "level", "module", "action", "message", "created_at").
		Values(entry.UserID, string(entry.Level), entry.Module, entry.Action, entry.Message, now).
		Suffix(returning(activityLogColumns)).
		ToSql()
}

// applyActivityFilter narrows q by every non-empty field of f. The action
// filter is a case-insensitive substring match.
func applyActivityFilter(q sq.SelectBuilder, f models.ActivityFilter) sq.SelectBuilder {
	if f.UserID != nil {
		q = q.Where(sq.Eq{"user_id": *f.UserID})
	}
	if f.Module != "" {
		q = q.Where(sq.Eq{"module": f.Module})
	}
	if f.Action != "" {
		q = q.Where(sq.Like{"LOWER(action)": "%" + strings.ToLower(f.Action) + "%"})
	}
	if !f.From.IsZero() {
		q = q.Where(sq.GtOrEq{"created_at": f.From.UTC()})
	}
	if !f.To.IsZero() {
		q = q.Where(sq.LtOrEq{"created_at": f.To.UTC()})
	}
	return q
}

// buildListActivityLogsQuery returns entries newest first. A zero limit
// means no limit.
func buildListActivityLogsQuery(b sq.StatementBuilderType, f models.ActivityFilter, limit uint64) (string, []any, error) {
	q := applyActivityFilter(b.Select(activityLogColumns...).From(activityLogsTable), f).
		OrderBy("created_at DESC", "id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return q.ToSql()
}

func buildCountByActionQuery(b sq.StatementBuilderType, f models.ActivityFilter) (string, []any, error) {
	return applyActivityFilter(b.Select("action", "COUNT(*) AS total").From(activityLogsTable), f).
		GroupBy("action").
		OrderBy("total DESC", "action").
		ToSql()
}
