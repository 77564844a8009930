package session

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"voxpop/interview/internal/models"
)

// ErrNoContent means no transcript could be resolved for report generation.
var ErrNoContent = errors.New("no messages to summarize")

// ResolveTranscript picks the transcript to feed report generation:
//
//  1. a non-empty client-supplied transcript wins outright; the store write
//     for the last turn may still be in flight, so the client copy is fresher
//  2. otherwise a real session id with a configured store is fetched
//  3. otherwise ErrNoContent
func (m *Manager) ResolveTranscript(ctx context.Context, supplied models.TurnList, id string) (models.TurnList, error) {
	if len(supplied) > 0 {
		return supplied, nil
	}

	if m.store != nil && !models.IsMockID(id) {
		interview, err := m.store.GetInterview(ctx, id)
		if err != nil {
			m.logger.Warn("failed to fetch persisted transcript",
				zap.Error(err), zap.String("interview_id", id))
		} else if len(interview.Messages) > 0 {
			return interview.Messages, nil
		}
	}

	return nil, ErrNoContent
}
