package authkit

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.SignUp()
	m.SignInSuccess()
	m.SignInSuccess()
	m.SignInFailure()
	m.RefreshSuccess()
	m.RefreshRevoked()
	m.PasswordReset()
	m.TokenRevoked()

	assert.Equal(t, float64(1), testutil.ToFloat64(m.signUps))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.signInSuccess))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.signInFailure))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.refreshSuccess))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.refreshRevoked))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.passwordResets))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.tokensRevoked))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.SignUp()
		m.SignInSuccess()
		m.SignInFailure()
		m.RefreshSuccess()
		m.RefreshRevoked()
		m.PasswordReset()
		m.TokenRevoked()
	})
}
