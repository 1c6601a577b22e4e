// Package review handles the disposition of priority ticket applications:
// Pending -> Approved or Rejected, both terminal, admin-only. Approving an
// application never touches the associated ticket; the workflow is manual-
// process support, not a retroactive fare change.
package review

import (
	"context"

	"railbook/internal/domain"
	"railbook/internal/domain/models"
	"railbook/internal/store"
	"railbook/internal/utils"
)

type Service struct {
	Store     *store.PriorityStore
	RequestID string
}

// Filter narrows a listing; empty fields match everything. Filtering runs
// client-side over the full collection, which holds at this domain's
// dataset sizes.
type Filter struct {
	Status       string
	PriorityType string
}

// List returns applications matching the filter, newest-first.
func (s Service) List(ctx context.Context, f Filter) []models.PriorityTicketRecord {
	all := s.Store.List(ctx)
	out := make([]models.PriorityTicketRecord, 0, len(all))
	for _, p := range all {
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.PriorityType != "" && p.PriorityType != f.PriorityType {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Disposition transitions one application. Repeating a transition with the
// same target status is idempotent; conflicting transitions on a terminal
// application are rejected.
func (s Service) Disposition(ctx context.Context, rc domain.RequestContext, id, status, notes string) (models.PriorityTicketRecord, error) {
	if !rc.IsAdmin() {
		return models.PriorityTicketRecord{}, domain.ForbiddenError{Action: "disposition a priority application"}
	}
	if status != models.PriorityApproved && status != models.PriorityRejected {
		return models.PriorityTicketRecord{}, domain.ValidationError{Field: "status", Msg: "must be Approved or Rejected"}
	}

	current, ok := s.Store.Get(ctx, id)
	if !ok {
		return models.PriorityTicketRecord{}, domain.NotFoundError{Resource: "priority application"}
	}
	if current.Terminal() && current.Status != status {
		return models.PriorityTicketRecord{}, domain.ConflictError{
			Resource: "priority application",
			Msg:      "already " + current.Status,
		}
	}

	out, err := s.Store.UpdateStatus(ctx, id, status, notes)
	if err != nil {
		return models.PriorityTicketRecord{}, domain.InternalError{Msg: "disposition could not be recorded", Err: err}
	}
	utils.LogEvent(s.RequestID, "review", "disposition", "id="+id+" status="+status)
	return out, nil
}
