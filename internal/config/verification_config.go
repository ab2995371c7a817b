package config

import "time"

const (
	VerifierStub   = "stub"
	VerifierRemote = "remote"
)

type VerificationConfig interface {
	GetVerifier() string
	GetVerifyServiceURL() string
	GetVerifyServiceToken() string
	GetVerifyLatency() time.Duration
	GetVerifyTimeout() time.Duration
}

type Verification struct{}

var _ VerificationConfig = Verification{}

// GetVerifier selects the identity provider: "stub" (canned payload) or "remote"
func (Verification) GetVerifier() string {
	return GetEnv("VERIFIER", VerifierStub)
}

// GetVerifyServiceURL is the base URL of the GitHub profile analysis service
func (Verification) GetVerifyServiceURL() string {
	return GetEnv("VERIFY_SERVICE_URL", "http://localhost:8090")
}

func (Verification) GetVerifyServiceToken() string {
	return GetEnv("VERIFY_SERVICE_TOKEN", "")
}

// GetVerifyLatency is the simulated provider delay used by the stub verifier
func (Verification) GetVerifyLatency() time.Duration {
	return GetEnvDuration("VERIFY_LATENCY", 2*time.Second)
}

func (Verification) GetVerifyTimeout() time.Duration {
	return GetEnvDuration("VERIFY_TIMEOUT", 10*time.Second)
}
