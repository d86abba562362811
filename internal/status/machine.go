// Package status defines the transaction status machine: the canonical
// vocabulary lives in constants, the transition and classification rules
// live here. Both operations are pure functions with no hidden state.
package status

import (
	"fmt"
	"strings"

	"github.com/mira-realty/transaction-copilot/constants"
)

// Action is an agent review decision.
type Action string

const (
	ActionApprove        Action = "approve"
	ActionReject         Action = "reject"
	ActionRequestChanges Action = "request_changes"
)

// ParseAction validates a raw action string.
func ParseAction(raw string) (Action, error) {
	switch Action(strings.ToLower(strings.TrimSpace(raw))) {
	case ActionApprove:
		return ActionApprove, nil
	case ActionReject:
		return ActionReject, nil
	case ActionRequestChanges:
		return ActionRequestChanges, nil
	}
	return "", fmt.Errorf("action must be one of approve, reject, request_changes: got %q", raw)
}

// ReviewAction maps an agent review decision onto the next status.
// The current status is part of the signature so stricter per-state rules
// can land without breaking callers; today the action alone decides.
func ReviewAction(current constants.TransactionStatus, action Action) (constants.TransactionStatus, error) {
	switch action {
	case ActionApprove:
		return constants.StatusDocusignReady, nil
	case ActionReject, ActionRequestChanges:
		return constants.StatusNeedsAttention, nil
	}
	return "", fmt.Errorf("invalid review action %q", action)
}

// Bucket is a dashboard grouping for a canonical status.
type Bucket struct {
	Status constants.TransactionStatus `json:"status"`
	Label  string                      `json:"label"`
}

// buckets in dashboard display order.
var buckets = []Bucket{
	{constants.StatusNew, "New Leads"},
	{constants.StatusRealistAdded, "Realist Data Added"},
	{constants.StatusContractDrafted, "Contract Drafted"},
	{constants.StatusAwaitingReview, "Awaiting Agent Review"},
	{constants.StatusDocusignReady, "DocuSign Ready"},
	{constants.StatusPendingSignatures, "Pending Signatures"},
	{constants.StatusCompleted, "Completed"},
	{constants.StatusNeedsAttention, "Needs Attention"},
}

// Buckets returns the dashboard buckets in display order.
func Buckets() []Bucket {
	out := make([]Bucket, len(buckets))
	copy(out, buckets)
	return out
}

// Classify normalizes a raw stored status (trim + lowercase) into its
// canonical bucket. Values outside the vocabulary land in needs_attention;
// status is free text in legacy rows and must never be rejected on read.
func Classify(raw string) Bucket {
	normalized := constants.TransactionStatus(strings.ToLower(strings.TrimSpace(raw)))
	for _, b := range buckets {
		if b.Status == normalized {
			return b
		}
	}
	return buckets[len(buckets)-1]
}

// Normalize returns the canonical status for raw, or needs_attention when
// raw falls outside the vocabulary.
func Normalize(raw string) constants.TransactionStatus {
	return Classify(raw).Status
}
