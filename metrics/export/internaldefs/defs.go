package internaldefs

import (
	tokenAuth "github.com/MrEthical07/tokenAuth"
)

// BucketCount is the number of latency buckets, the last one unbounded.
const BucketCount = 8

type CounterDef struct {
	ID   tokenAuth.MetricID
	Name string
	Help string
}

type HistogramDef struct {
	ID   tokenAuth.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter in exposition order.
var CounterDefs = []CounterDef{
	{ID: tokenAuth.MetricSignupSuccess, Name: "tokenauth_signup_success_total", Help: "Accounts created through signup."},
	{ID: tokenAuth.MetricSignupDuplicate, Name: "tokenauth_signup_duplicate_total", Help: "Signups rejected because the handle was taken."},
	{ID: tokenAuth.MetricSignupFailure, Name: "tokenauth_signup_failure_total", Help: "Signups that failed for any other reason."},
	{ID: tokenAuth.MetricLoginSuccess, Name: "tokenauth_login_success_total", Help: "Successful logins."},
	{ID: tokenAuth.MetricLoginFailure, Name: "tokenauth_login_failure_total", Help: "Failed logins."},
	{ID: tokenAuth.MetricLogoutSuccess, Name: "tokenauth_logout_success_total", Help: "Sessions revoked by logout."},
	{ID: tokenAuth.MetricLogoutFailure, Name: "tokenauth_logout_failure_total", Help: "Failed logouts."},
	{ID: tokenAuth.MetricLogoutMismatch, Name: "tokenauth_logout_mismatch_total", Help: "Logouts whose access token belonged to another user."},
	{ID: tokenAuth.MetricRefreshSuccess, Name: "tokenauth_refresh_success_total", Help: "Successful refresh rotations."},
	{ID: tokenAuth.MetricRefreshFailure, Name: "tokenauth_refresh_failure_total", Help: "Failed refreshes."},
	{ID: tokenAuth.MetricRefreshAccountInactive, Name: "tokenauth_refresh_account_inactive_total", Help: "Refreshes rejected for suspended or deleted accounts."},
	{ID: tokenAuth.MetricSessionCreated, Name: "tokenauth_session_created_total", Help: "Refresh sessions written."},
	{ID: tokenAuth.MetricSessionDeleted, Name: "tokenauth_session_deleted_total", Help: "Refresh sessions deleted."},
	{ID: tokenAuth.MetricAuthenticateSuccess, Name: "tokenauth_authenticate_success_total", Help: "Bearer tokens accepted by the trust filter."},
	{ID: tokenAuth.MetricAuthenticateFailure, Name: "tokenauth_authenticate_failure_total", Help: "Bearer tokens rejected by the trust filter."},
}

var HistogramDefs = []HistogramDef{
	{ID: tokenAuth.MetricRefreshLatency, Name: "tokenauth_refresh_latency_seconds", Help: "Refresh latency."},
}

// HistogramBounds are the Prometheus le labels, in seconds.
var HistogramBounds = [BucketCount]string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// Cumulative turns raw per-bucket counts into cumulative ones. Missing
// trailing buckets count as zero.
func Cumulative(raw []uint64) [BucketCount]uint64 {
	var out [BucketCount]uint64
	var running uint64
	for i := 0; i < BucketCount; i++ {
		if i < len(raw) {
			running += raw[i]
		}
		out[i] = running
	}
	return out
}
