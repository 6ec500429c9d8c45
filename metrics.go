package authkit

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks counters for the auth flows. A nil *Metrics is valid and
// records nothing, so callers never need to guard their instrumentation.
type Metrics struct {
	signUps        prometheus.Counter
	signInSuccess  prometheus.Counter
	signInFailure  prometheus.Counter
	refreshSuccess prometheus.Counter
	refreshRevoked prometheus.Counter
	passwordResets prometheus.Counter
	tokensRevoked  prometheus.Counter
}

// NewMetrics registers the auth counters on reg and returns the handle.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		signUps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auth_sign_ups_total",
			Help: "Accounts created through sign-up.",
		}),
		signInSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auth_sign_in_success_total",
			Help: "Successful sign-ins.",
		}),
		signInFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auth_sign_in_failure_total",
			Help: "Rejected sign-in attempts.",
		}),
		refreshSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auth_refresh_success_total",
			Help: "Successful token refreshes.",
		}),
		refreshRevoked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auth_refresh_revoked_total",
			Help: "Refresh attempts rejected because the session was revoked.",
		}),
		passwordResets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auth_password_resets_total",
			Help: "Completed password resets.",
		}),
		tokensRevoked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auth_tokens_revoked_total",
			Help: "Sessions blacklisted through logout or refresh failures.",
		}),
	}

	reg.MustRegister(
		m.signUps,
		m.signInSuccess,
		m.signInFailure,
		m.refreshSuccess,
		m.refreshRevoked,
		m.passwordResets,
		m.tokensRevoked,
	)

	return m
}

func (m *Metrics) SignUp() {
	if m != nil {
		m.signUps.Inc()
	}
}

func (m *Metrics) SignInSuccess() {
	if m != nil {
		m.signInSuccess.Inc()
	}
}

func (m *Metrics) SignInFailure() {
	if m != nil {
		m.signInFailure.Inc()
	}
}

func (m *Metrics) RefreshSuccess() {
	if m != nil {
		m.refreshSuccess.Inc()
	}
}

func (m *Metrics) RefreshRevoked() {
	if m != nil {
		m.refreshRevoked.Inc()
	}
}

func (m *Metrics) PasswordReset() {
	if m != nil {
		m.passwordResets.Inc()
	}
}

func (m *Metrics) TokenRevoked() {
	if m != nil {
		m.tokensRevoked.Inc()
	}
}
