package config

import (
	"time"

	"golang.org/x/time/rate"
)

type SecurityConfig interface {
	GetSessionSecret() []byte
	GetMaxSessionAge() time.Duration
	GetAdminRequiresRole() bool
	GetAdminUsernames() []string
	GetEnableRateLimiting() bool
	GetSignupRate() rate.Limit
	GetSignupBurst() int
	GetTaskCreateLatency() time.Duration
}

type Security struct{}

var _ SecurityConfig = Security{}

// DevSessionSecret signs session cookies when SESSION_SECRET is unset. Only acceptable in DEV.
const DevSessionSecret = "campusmate-dev-secret-change-me"

func (Security) GetSessionSecret() []byte {
	return []byte(GetEnv("SESSION_SECRET", DevSessionSecret))
}

func (Security) GetMaxSessionAge() time.Duration {
	return GetEnvDuration("SESSION_MAX_AGE", 30*24*time.Hour)
}

// GetAdminRequiresRole controls whether /admin demands role admin or just any session
func (Security) GetAdminRequiresRole() bool {
	return GetEnvBool("ADMIN_REQUIRES_ROLE", true)
}

// GetAdminUsernames lists the provider usernames allowed to sign up as admin
func (Security) GetAdminUsernames() []string {
	return GetEnvList("ADMIN_USERNAMES")
}

func (Security) GetEnableRateLimiting() bool {
	return GetEnvBool("RATE_LIMITING", true)
}

func (Security) GetSignupRate() rate.Limit {
	return rate.Limit(10.0 / 60.0) // 10 verifications per minute per client
}

func (Security) GetSignupBurst() int {
	return 5
}

// GetTaskCreateLatency is the simulated backend delay around task creation
func (Security) GetTaskCreateLatency() time.Duration {
	return GetEnvDuration("TASK_CREATE_LATENCY", 1500*time.Millisecond)
}
