package phrasing

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const instructions = `IMPORTANT: Answer ONLY the specific question asked by the user. Do not provide comprehensive profile information unless specifically asked. Use the exact data provided in the context above to give a direct, concise answer.

For example:
- If asked "Who is my manager?", respond with just the manager's name
- If asked "What is my department?", respond with just the department name
- If asked for leave balance, provide only the leave information
- If asked for holidays, list only the holiday dates

Respond naturally but keep it focused on the specific query. Use the actual data from the context.`

func BuildPrompt(req Request) string {
	var sb strings.Builder
	sb.WriteString("You are a helpful Employee Self-Service chatbot for a company. You have access to specific employee data and must use it to provide accurate responses.\n\n")
	sb.WriteString(strings.Join(contextLines(req), "\n"))
	sb.WriteString("\n\n")
	sb.WriteString(instructions)
	return sb.String()
}

func contextLines(req Request) []string {
	lines := []string{fmt.Sprintf("Intent: %s (%s)", req.Intent.Name, req.Intent.ID)}

	if req.User != nil {
		lines = append(lines, fmt.Sprintf("User: %s (ID: %s)", req.User.Name, req.User.EmployeeID))
	} else {
		lines = append(lines, "User: Not authenticated")
	}

	if entities := entityLines(req); len(entities) > 0 {
		lines = append(lines, "Entities extracted: "+strings.Join(entities, "; "))
	}

	if !req.State.Idle() {
		if raw, err := json.Marshal(req.State); err == nil {
			lines = append(lines, "Conversation state: "+string(raw))
		}
	}

	if len(req.Data) > 0 {
		if raw, err := json.Marshal(req.Data); err == nil {
			lines = append(lines, "Business data: "+string(raw))
		}
	}

	return lines
}

func entityLines(req Request) []string {
	e := req.Entities
	var out []string
	if len(e.Dates) > 0 {
		out = append(out, "Dates mentioned: "+strings.Join(e.Dates, ", "))
	}
	if e.LeaveDuration.Days != nil {
		out = append(out, fmt.Sprintf("Leave duration: %d days", *e.LeaveDuration.Days))
	}
	if e.LeaveDuration.Weeks != nil {
		out = append(out, fmt.Sprintf("Leave duration: %d weeks", *e.LeaveDuration.Weeks))
	}
	if len(e.LeaveTypes) > 0 {
		out = append(out, "Leave types: "+strings.Join(e.LeaveTypes, ", "))
	}
	if e.PhoneNumber != nil {
		out = append(out, "Phone number: "+*e.PhoneNumber)
	}
	return out
}
