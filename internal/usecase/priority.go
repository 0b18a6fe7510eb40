package usecase

import (
	"strings"

	"github.com/caioaot/atelier-backend/internal/entity"
)

var (
	urgentKeywords = []string{"urgent", "asap", "emergency", "critical", "immediately"}
	highKeywords   = []string{"important", "priority", "deadline", "soon"}
)

// ClassifyPriority ranks a contact submission by keyword: urgent words win,
// then the "important" tier, then the inquiry type. Project and partnership
// inquiries without keywords still rank medium.
func ClassifyPriority(subject, message, contactType string) string {
	content := strings.ToLower(subject + " " + message)

	for _, keyword := range urgentKeywords {
		if strings.Contains(content, keyword) {
			return entity.PriorityHigh
		}
	}

	for _, keyword := range highKeywords {
		if strings.Contains(content, keyword) {
			return entity.PriorityMedium
		}
	}

	if contactType == entity.ContactTypePartnership || contactType == entity.ContactTypeProject {
		return entity.PriorityMedium
	}

	return entity.PriorityLow
}
