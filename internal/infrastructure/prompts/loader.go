package prompts

import (
	_ "embed"
)

//go:embed agent_instruction.txt
var AgentInstructionTemplate string

//go:embed success_email.html
var SuccessEmailHTML string

//go:embed success_email.txt
var SuccessEmailText string

//go:embed failure_email.html
var FailureEmailHTML string

//go:embed failure_email.txt
var FailureEmailText string
