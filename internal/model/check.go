package model

// CheckName identifies a verification routine in the typed registry.
// Every registered check maps to exactly one name; dynamic dispatch over
// free-form strings is deliberately avoided.
type CheckName string

const (
	CheckFileExists          CheckName = "file_exists"          // Artifact content could be located
	CheckBareHandler         CheckName = "bare_handler"         // Catch-all error handler swallowing all failure types
	CheckHardcodedTruncation CheckName = "hardcoded_truncation" // Fixed truncation limit on an unbounded collection
	CheckDuplicateDefinition CheckName = "duplicate_definition" // A singular routine defined more than once
	CheckDisallowedBackend   CheckName = "disallowed_backend"   // Use of an unsanctioned processing backend
	CheckUnguardedAccess     CheckName = "unguarded_access"     // Unguarded indexing into a possibly-absent response structure
	CheckRoutineExists       CheckName = "routine_exists"       // Claim-bound: a named routine is actually defined
)

// Status is the tri-state outcome of running one check
type Status string

const (
	StatusVerified Status = "VERIFIED"
	StatusFailed   Status = "FAILED"
	// StatusUnable means the content could not be structurally understood.
	// Downstream classification treats it as "no independent confirmation",
	// never as "contradicted".
	StatusUnable Status = "UNABLE_TO_VERIFY"
)

// VerificationResult is the output of running one check against one artifact
type VerificationResult struct {
	CheckName CheckName `json:"check_name"`
	Status    Status    `json:"status"`
	Evidence  string    `json:"evidence"`          // Cites concrete content: line numbers or matched text
	Count     int       `json:"count,omitempty"`   // Occurrences, when relevant
	Subject   string    `json:"subject,omitempty"` // Claim parameter for claim-bound checks (e.g., routine name)
}
