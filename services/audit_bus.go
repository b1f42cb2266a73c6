package services

import (
	"time"

	"go.uber.org/zap"
)

type auditDeps struct {
	logger *zap.Logger
	rt     *RealtimeHub
}

var _audit auditDeps

func InitAuditBus(logger *zap.Logger, rt *RealtimeHub) {
	_audit = auditDeps{logger: logger, rt: rt}
}

type ReviewEvent struct {
	Kind       string    `json:"kind"`
	EvidenceID uint      `json:"evidence_id"`
	ReviewerID uint      `json:"reviewer_id"`
	At         time.Time `json:"at"`
}

// EmitReviewEvent records that a piece of evidence was marked reviewed.
// Side effect only; stored state is already committed by the caller.
func EmitReviewEvent(reviewerID, evidenceID uint) { // safe to call anywhere
	if _audit.logger != nil {
		_audit.logger.Info("evidence marked as reviewed",
			zap.Uint("evidence_id", evidenceID),
			zap.Uint("reviewer_id", reviewerID),
		)
	}
	if _audit.rt != nil {
		_audit.rt.Broadcast(ReviewEvent{
			Kind:       "evidence.reviewed",
			EvidenceID: evidenceID,
			ReviewerID: reviewerID,
			At:         time.Now(),
		})
	}
}
