// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/imperial-command/internal/adapter"
	"github.com/MKhiriev/imperial-command/internal/logger"
	"github.com/MKhiriev/imperial-command/internal/policy"
	"github.com/MKhiriev/imperial-command/internal/session"
	"github.com/MKhiriev/imperial-command/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// statusTTL is how long a status line stays on screen.
var statusTTL = 2 * time.Second

const sessionExpiredText = "Session expired. Please sign in again"

type appMode int

const (
	modeLogin appMode = iota
	modeRestoring
	modeShell
)

type appModel struct {
	ctx       context.Context
	api       adapter.ServerAdapter
	sessions  *session.Holder
	logger    *logger.Logger
	buildInfo models.AppBuildInfo
	copyFn    func(string) error

	mode      appMode
	user      models.UserResponse
	resources []policy.Resource
	current   policy.Resource

	login     loginModel
	dashboard dashboardModel
	modules   modulesModel
	stats     statsModel
	admin     adminModel
	system    systemModel
	status    string
	spinner   spinner.Model

	showError     bool
	errorOverlay  errorOverlayModel
	showConfirm   bool
	confirm       confirmModel
	pendingDelete int64
	showBuildInfo bool
	err           error
}

func newAppModel(ctx context.Context, api adapter.ServerAdapter, sessions *session.Holder, log *logger.Logger, buildInfo models.AppBuildInfo) appModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return appModel{
		ctx:       ctx,
		api:       api,
		sessions:  sessions,
		logger:    log,
		buildInfo: buildInfo,
		copyFn:    clipboard.WriteAll,
		mode:      modeLogin,
		current:   policy.DefaultResource,
		login:     newLoginModel(),
		spinner:   s,
	}
}

// withSession starts the model from a saved session. Init validates it
// against the server before the shell opens.
func (m appModel) withSession(s session.Session) appModel {
	m.api.SetToken(s.Token)
	m.user = s.User
	m.mode = modeRestoring
	return m
}

func (m appModel) Init() tea.Cmd {
	if m.mode == modeRestoring {
		return tea.Batch(m.spinner.Tick, m.cmdLoadProfile())
	}
	return textinput.Blink
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.err = ErrUserQuit
			return m, tea.Quit
		}
		if m.showError {
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
				m.showError = false
				m.errorOverlay.message = ""
			}
			return m, nil
		}
		if m.showConfirm {
			if key.Matches(msg, keys.yes) {
				m.showConfirm = false
				id := m.pendingDelete
				m.pendingDelete = 0
				return m, m.cmdDeleteUser(id)
			}
			if key.Matches(msg, keys.no) || key.Matches(msg, keys.esc) {
				m.showConfirm = false
				m.pendingDelete = 0
			}
			return m, nil
		}
		if m.showBuildInfo {
			if key.Matches(msg, keys.esc) || key.Matches(msg, keys.info) {
				m.showBuildInfo = false
			}
			return m, nil
		}
	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case loginDoneMsg:
		m.login.submitting = false
		if msg.err != nil {
			m.login.errMsg = loginErrorText(msg.err)
			return m, nil
		}
		return m.enterShell(msg.session.User)
	case sessionRestoredMsg:
		return m.onProfile(msg)
	case dashboardLoadedMsg:
		m.dashboard.loading = false
		if msg.err != nil {
			return m.handleErr(msg.err)
		}
		m.dashboard.health = msg.health
		m.dashboard.modules = msg.modules
		m.dashboard.loaded = true
		return m, nil
	case modulesLoadedMsg:
		m.modules.loading = false
		if msg.err != nil {
			return m.handleErr(msg.err)
		}
		m.modules.items = msg.modules
		m.modules.cursor.clamp(len(msg.modules))
		return m, nil
	case moduleToggledMsg:
		if msg.err != nil {
			return m.handleErr(msg.err)
		}
		m.modules.replace(msg.module)
		state := "stopped"
		if msg.module.Enabled {
			state = "started"
		}
		return m.setStatus(fmt.Sprintf("Module %s %s", msg.module.Name, state))
	case statsLoadedMsg:
		m.stats.loading = false
		if msg.err != nil {
			return m.handleErr(msg.err)
		}
		m.stats.stats = msg.stats
		m.stats.loaded = true
		return m, nil
	case usersLoadedMsg:
		m.admin.loading = false
		if msg.err != nil {
			return m.handleErr(msg.err)
		}
		m.admin.users = msg.users
		m.admin.cursor.clamp(len(msg.users))
		return m, nil
	case userDeletedMsg:
		if msg.err != nil {
			return m.handleErr(msg.err)
		}
		m.admin.loading = true
		m.status = fmt.Sprintf("User #%d deleted", msg.id)
		return m, tea.Batch(cmdClearStatus(), m.cmdLoadUsers())
	case systemLoadedMsg:
		m.system.loading = false
		if msg.err != nil {
			return m.handleErr(msg.err)
		}
		m.system.status = msg.status
		m.system.loaded = true
		return m, nil
	case copiedMsg:
		if msg.err != nil {
			m.showErrorf(msg.err.Error())
			return m, nil
		}
		return m.setStatus("Token copied to clipboard")
	case clearStatusMsg:
		m.status = ""
		return m, nil
	case tea.WindowSizeMsg:
		return m, nil
	}

	switch m.mode {
	case modeLogin:
		return m.updateLogin(msg)
	case modeShell:
		return m.updateShell(msg)
	}
	return m, nil
}

func (m appModel) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.tab):
			m.login = m.login.focusNext()
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.login = m.login.focusPrev()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.login.submitting {
				return m, nil
			}
			username, password := m.login.credentials()
			if username == "" || password == "" {
				m.login.errMsg = "Username and password are required"
				return m, nil
			}
			m.login.errMsg = ""
			m.login.submitting = true
			return m, m.cmdLogin(username, password)
		}
	}

	var cmd tea.Cmd
	m.login.inputs[m.login.focus], cmd = m.login.inputs[m.login.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateShell(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	case key.Matches(keyMsg, keys.logout):
		return m.toLogin("")
	case key.Matches(keyMsg, keys.info):
		m.showBuildInfo = true
		return m, nil
	case key.Matches(keyMsg, keys.tab):
		return m.navigate(m.neighbour(1))
	case key.Matches(keyMsg, keys.backtab):
		return m.navigate(m.neighbour(-1))
	case key.Matches(keyMsg, keys.refresh):
		cmd := m.loadCurrent()
		return m, cmd
	}

	if r, ok := m.resourceByDigit(keyMsg.String()); ok {
		return m.navigate(r)
	}

	switch m.current {
	case policy.ResourceModules:
		switch {
		case key.Matches(keyMsg, keys.up):
			m.modules.cursor.up()
		case key.Matches(keyMsg, keys.down):
			m.modules.cursor.down(len(m.modules.items))
		case key.Matches(keyMsg, keys.toggle):
			if mod, ok := m.modules.current(); ok {
				return m, m.cmdToggleModule(mod.ID, !mod.Enabled)
			}
		}
	case policy.ResourceInstagram, policy.ResourceYouTube:
		if key.Matches(keyMsg, keys.toggle) {
			if mod, ok := m.modules.find(models.ModuleName(m.current)); ok {
				return m, m.cmdToggleModule(mod.ID, !mod.Enabled)
			}
		}
	case policy.ResourceStatistics:
		switch {
		case key.Matches(keyMsg, keys.left):
			m.stats.prev()
			cmd := m.loadCurrent()
			return m, cmd
		case key.Matches(keyMsg, keys.right):
			m.stats.next()
			cmd := m.loadCurrent()
			return m, cmd
		}
	case policy.ResourceAdmin:
		switch {
		case key.Matches(keyMsg, keys.up):
			m.admin.cursor.up()
		case key.Matches(keyMsg, keys.down):
			m.admin.cursor.down(len(m.admin.users))
		case key.Matches(keyMsg, keys.delete):
			u, ok := m.admin.current()
			if !ok {
				return m, nil
			}
			if u.ID == m.user.ID {
				m.showErrorf("You cannot delete your own account")
				return m, nil
			}
			m.pendingDelete = u.ID
			m.confirm = confirmModel{message: u.Username}
			m.showConfirm = true
		}
	case policy.ResourceSettings:
		if key.Matches(keyMsg, keys.copy) {
			return m, m.cmdCopyToken()
		}
	}
	return m, nil
}

func (m appModel) View() string {
	if m.showBuildInfo {
		return appStyle.Render(renderBuildInfoWindow(m.buildInfo))
	}

	var body string
	switch m.mode {
	case modeLogin:
		body = m.login.View()
	case modeRestoring:
		body = m.spinner.View() + " Restoring session..."
	case modeShell:
		body = m.shellView()
	}

	if m.showConfirm {
		body += "\n\n" + m.confirm.View()
	}
	if m.showError {
		body += "\n\n" + m.errorOverlay.View()
	}

	return appStyle.Render(body)
}

func (m appModel) shellView() string {
	header := headerStyle.Render("IMPERIAL COMMAND") + "  " +
		titleStyle.Render(valueOrDash(m.user.Name)) + " │ " +
		string(m.user.Role) + " │ " +
		rankStyle.Render(string(m.user.Rank))

	var nav strings.Builder
	for i, r := range m.resources {
		label := fmt.Sprintf("%d %s", i+1, resourceTitle(r))
		if r == m.current {
			nav.WriteString(sidebarActiveStyle.Render("> " + label))
		} else {
			nav.WriteString("  " + label)
		}
		nav.WriteString("\n")
	}

	content := m.pageView()
	if m.busy() {
		content += "\n\n" + m.spinner.View()
	}
	if m.status != "" {
		content += "\n\n" + m.status
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(strings.TrimRight(nav.String(), "\n")),
		contentStyle.Render(content),
	)
	footer := helpStyle.Render("tab/1-9: navigate │ l: logout │ v: about │ q: quit")

	return header + "\n" + uiDivider + "\n\n" + body + "\n\n" + footer
}

func (m appModel) pageView() string {
	switch m.current {
	case policy.ResourceModules:
		return m.modules.View()
	case policy.ResourceInstagram, policy.ResourceYouTube:
		return featureView(models.ModuleName(m.current), m.modules)
	case policy.ResourceStatistics:
		return m.stats.View()
	case policy.ResourceAdmin:
		return m.admin.View()
	case policy.ResourceSystem:
		return m.system.View()
	case policy.ResourceSettings:
		return settingsView(m.user, m.sessions.Path())
	default:
		return m.dashboard.View(m.user)
	}
}

func resourceTitle(r policy.Resource) string {
	switch r {
	case policy.ResourceYouTube:
		return "YouTube"
	default:
		s := string(r)
		return strings.ToUpper(s[:1]) + s[1:]
	}
}

// ── navigation ───────────────────────────────────────────────────────────────

func (m appModel) subject() policy.Subject {
	return policy.SubjectOf(m.user)
}

func (m appModel) enterShell(user models.UserResponse) (appModel, tea.Cmd) {
	m.mode = modeShell
	m.user = user
	m.resources = policy.Allowed(m.subject())
	m.login = newLoginModel()
	return m.navigate(policy.DefaultResource)
}

// navigate opens r, or the default resource when the user may not open it.
func (m appModel) navigate(r policy.Resource) (appModel, tea.Cmd) {
	resolved := policy.Resolve(m.subject(), r)
	if resolved != r {
		m.logger.Debug().Str("resource", string(r)).Msg("navigation denied, falling back")
	}
	m.current = resolved
	m.status = ""
	cmd := m.loadCurrent()
	return m, cmd
}

func (m appModel) neighbour(step int) policy.Resource {
	if len(m.resources) == 0 {
		return policy.DefaultResource
	}
	idx := 0
	for i, r := range m.resources {
		if r == m.current {
			idx = i
			break
		}
	}
	idx = (idx + step + len(m.resources)) % len(m.resources)
	return m.resources[idx]
}

func (m appModel) resourceByDigit(s string) (policy.Resource, bool) {
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return "", false
	}
	idx := int(s[0] - '1')
	if idx >= len(m.resources) {
		return "", false
	}
	return m.resources[idx], true
}

// loadCurrent marks the current page as loading and returns its fetch command.
func (m *appModel) loadCurrent() tea.Cmd {
	var cmd tea.Cmd
	switch m.current {
	case policy.ResourceDashboard:
		m.dashboard.loading = true
		cmd = m.cmdLoadDashboard()
	case policy.ResourceModules, policy.ResourceInstagram, policy.ResourceYouTube:
		m.modules.loading = true
		cmd = m.cmdLoadModules()
	case policy.ResourceStatistics:
		m.stats.loading = true
		cmd = m.cmdLoadStats(m.stats.module())
	case policy.ResourceAdmin:
		m.admin.loading = true
		cmd = m.cmdLoadUsers()
	case policy.ResourceSystem:
		m.system.loading = true
		cmd = m.cmdLoadSystem()
	case policy.ResourceSettings:
		cmd = m.cmdLoadProfile()
	}
	if cmd == nil {
		return nil
	}
	return tea.Batch(m.spinner.Tick, cmd)
}

func (m appModel) busy() bool {
	return m.mode == modeRestoring ||
		m.dashboard.loading || m.modules.loading || m.stats.loading ||
		m.admin.loading || m.system.loading
}

// ── session handling ─────────────────────────────────────────────────────────

// onProfile applies a fresh copy of the current user. It validates a restored
// session at startup and refreshes permissions afterwards.
func (m appModel) onProfile(msg sessionRestoredMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if m.mode == modeRestoring && !errors.Is(msg.err, adapter.ErrUnauthorized) {
			m.logger.Warn().Err(msg.err).Msg("could not validate session, using cached profile")
			next, cmd := m.enterShell(m.user)
			next.showErrorf(humanizeServerUnavailableError(msg.err))
			return next, cmd
		}
		return m.handleErr(msg.err)
	}

	if err := m.sessions.UpdateUser(msg.user); err != nil {
		m.logger.Warn().Err(err).Msg("error saving refreshed profile")
	}

	if m.mode == modeRestoring {
		return m.enterShell(msg.user)
	}

	m.user = msg.user
	m.resources = policy.Allowed(m.subject())
	if resolved := policy.Resolve(m.subject(), m.current); resolved != m.current {
		return m.navigate(resolved)
	}
	return m, nil
}

// handleErr returns to the login screen on 401, falls back to the default
// page on 403 and shows every other error in the overlay.
func (m appModel) handleErr(err error) (tea.Model, tea.Cmd) {
	switch {
	case errors.Is(err, adapter.ErrUnauthorized):
		m.logger.Info().Err(err).Msg("session rejected by server")
		return m.toLogin(sessionExpiredText)
	case errors.Is(err, adapter.ErrForbidden):
		m.showErrorf(humanizeServerUnavailableError(err))
		m.current = policy.DefaultResource
		m.dashboard.loading = true
		return m, tea.Batch(m.cmdLoadProfile(), m.cmdLoadDashboard())
	default:
		m.logger.Debug().Err(err).Msg("request failed")
		m.showErrorf(humanizeServerUnavailableError(err))
		return m, nil
	}
}

// toLogin drops the session and shows the login screen with message.
func (m appModel) toLogin(message string) (tea.Model, tea.Cmd) {
	if err := m.sessions.Clear(); err != nil {
		m.logger.Warn().Err(err).Msg("error clearing session")
	}
	m.api.SetToken("")

	m.mode = modeLogin
	m.user = models.UserResponse{}
	m.resources = nil
	m.current = policy.DefaultResource
	m.dashboard = dashboardModel{}
	m.modules = modulesModel{}
	m.stats = statsModel{}
	m.admin = adminModel{}
	m.system = systemModel{}
	m.status = ""
	m.showConfirm = false
	m.pendingDelete = 0
	m.login = newLoginModel()
	m.login.errMsg = message
	return m, textinput.Blink
}

func (m *appModel) showErrorf(message string) {
	m.showError = true
	m.errorOverlay.message = message
}

func (m appModel) setStatus(status string) (tea.Model, tea.Cmd) {
	m.status = status
	return m, cmdClearStatus()
}

func loginErrorText(err error) string {
	switch {
	case errors.Is(err, adapter.ErrUnauthorized):
		return "Invalid username or password"
	case errors.Is(err, adapter.ErrBadRequest):
		return "Username and password are required"
	default:
		return humanizeServerUnavailableError(err)
	}
}

// ── commands ─────────────────────────────────────────────────────────────────

func (m appModel) cmdLogin(username, password string) tea.Cmd {
	ctx, api, sessions, log := m.ctx, m.api, m.sessions, m.logger
	return func() tea.Msg {
		auth, err := api.Login(ctx, models.LoginRequest{Username: username, Password: password})
		if err != nil {
			return loginDoneMsg{err: err}
		}

		s := session.Session{Token: auth.Token, User: auth.User}
		if err = sessions.Save(s); err != nil {
			log.Warn().Err(err).Msg("error saving session, continuing without persistence")
		}
		return loginDoneMsg{session: s}
	}
}

func (m appModel) cmdLoadProfile() tea.Cmd {
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		user, err := api.Me(ctx)
		return sessionRestoredMsg{user: user, err: err}
	}
}

func (m appModel) cmdLoadDashboard() tea.Cmd {
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		health, err := api.Health(ctx)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		modules, err := api.ListModules(ctx)
		return dashboardLoadedMsg{health: health, modules: modules, err: err}
	}
}

func (m appModel) cmdLoadModules() tea.Cmd {
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		modules, err := api.ListModules(ctx)
		return modulesLoadedMsg{modules: modules, err: err}
	}
}

func (m appModel) cmdToggleModule(id int64, enabled bool) tea.Cmd {
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		module, err := api.ToggleModule(ctx, id, enabled)
		return moduleToggledMsg{module: module, err: err}
	}
}

func (m appModel) cmdLoadStats(module string) tea.Cmd {
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		stats, err := api.Stats(ctx, module)
		return statsLoadedMsg{stats: stats, err: err}
	}
}

func (m appModel) cmdLoadUsers() tea.Cmd {
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		users, err := api.ListUsers(ctx)
		return usersLoadedMsg{users: users, err: err}
	}
}

func (m appModel) cmdDeleteUser(id int64) tea.Cmd {
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		return userDeletedMsg{id: id, err: api.DeleteUser(ctx, id)}
	}
}

func (m appModel) cmdLoadSystem() tea.Cmd {
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		status, err := api.SystemStatus(ctx)
		return systemLoadedMsg{status: status, err: err}
	}
}

func (m appModel) cmdCopyToken() tea.Cmd {
	token, copyFn := m.api.Token(), m.copyFn
	return func() tea.Msg {
		if token == "" {
			return copiedMsg{err: errors.New("no token to copy")}
		}
		if err := copyFn(token); err != nil {
			return copiedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
