package constants

// TransactionStatus is the canonical status for rows in leads.
type TransactionStatus string

// Stable values (store these exact strings in DB).
const (
	StatusNew               TransactionStatus = "new"                // fresh intake, nothing attached yet
	StatusRealistAdded      TransactionStatus = "realist_added"      // property data extracted and stored
	StatusContractDrafted   TransactionStatus = "contract_drafted"   // contract document generated
	StatusAwaitingReview    TransactionStatus = "awaiting_review"    // waiting on agent review
	StatusDocusignReady     TransactionStatus = "docusign_ready"     // approved, ready for signature routing
	StatusPendingSignatures TransactionStatus = "pending_signatures" // sent out, signatures outstanding
	StatusCompleted         TransactionStatus = "completed"          // terminal success
	StatusNeedsAttention    TransactionStatus = "needs_attention"    // rejected, changed, or unrecognized
)

// AllStatuses lists the closed vocabulary in pipeline order.
var AllStatuses = []TransactionStatus{
	StatusNew,
	StatusRealistAdded,
	StatusContractDrafted,
	StatusAwaitingReview,
	StatusDocusignReady,
	StatusPendingSignatures,
	StatusCompleted,
	StatusNeedsAttention,
}

// ActiveStatuses are the in-flight transaction states deadline monitoring
// and follow-up jobs care about.
var ActiveStatuses = []TransactionStatus{
	StatusContractDrafted,
	StatusDocusignReady,
	StatusPendingSignatures,
}

// IsValidStatus reports whether s is one of the canonical values.
// Input is matched exactly; normalize first if it came from storage or a request.
func IsValidStatus(s TransactionStatus) bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}
