package services

import "ps-dashboard-api/models"

// ThreadTitle carries the problem statement header shown on a thread.
type ThreadTitle struct {
	Code  string
	Title string
}

// GroupMessagesIntoThreads folds the flat message list into per-problem-
// statement threads, preserving first-seen order. unread counts only messages
// addressed to the actor's role that are still unread. Threads are recomputed
// on every request; nothing is persisted.
func GroupMessagesIntoThreads(rows []models.ProblemStatementMessage, actorRole string, titles map[string]ThreadTitle) []models.MessageThread {
	threads := make([]models.MessageThread, 0)
	index := make(map[string]int)

	for _, msg := range rows {
		unread := 0
		if !msg.IsRead && msg.RecipientRole != nil && *msg.RecipientRole == actorRole {
			unread = 1
		}

		if i, ok := index[msg.ProblemStatementID]; ok {
			threads[i].Messages = append(threads[i].Messages, msg)
			threads[i].UnreadCount += unread
			continue
		}

		thread := models.MessageThread{
			PSID:        msg.ProblemStatementID,
			PSTitle:     "Problem Statement",
			Messages:    []models.ProblemStatementMessage{msg},
			UnreadCount: unread,
		}
		if title, ok := titles[msg.ProblemStatementID]; ok {
			thread.PSCode = title.Code
			if title.Title != "" {
				thread.PSTitle = title.Title
			}
		}
		index[msg.ProblemStatementID] = len(threads)
		threads = append(threads, thread)
	}

	return threads
}
