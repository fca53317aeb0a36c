package entity

type RunState string

const (
	StateIntake             RunState = "INTAKE"
	StateSecretsResolved    RunState = "SECRETS_RESOLVED"
	StateInstructionsLoaded RunState = "INSTRUCTIONS_LOADED"
	StateAgentInvoked       RunState = "AGENT_INVOKED"
	StateArtifactPublished  RunState = "ARTIFACT_PUBLISHED"
	StateNotifiedSuccess    RunState = "NOTIFIED_SUCCESS"
	StateFailed             RunState = "FAILED"
	StateNotifiedFailure    RunState = "NOTIFIED_FAILURE"
)

func (s RunState) Terminal() bool {
	return s == StateNotifiedSuccess || s == StateNotifiedFailure
}

func (s RunState) String() string {
	return string(s)
}
