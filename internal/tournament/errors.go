package tournament

import "github.com/DhavalSuthar-24/tourney/internal/common"

var (
	ErrNotFound       = common.NotFound("Tournament not found")
	ErrForbidden      = common.Forbidden("Forbidden")
	ErrNotOrganizer   = common.Forbidden("Only organizers can manage tournaments")
	ErrDuplicateTitle = common.Conflict("Tournament with this title already exists")
	ErrInvalidStatus  = common.Invalid("Invalid status value")
	ErrInvalidTitle   = common.Invalid("Title must contain letters or digits")
	ErrNegativeAmount = common.Invalid("Entry fee and prize pool cannot be negative")
)

// ErrNoSlot is returned by ClaimSlot when the conditional increment matched
// no row: the tournament left REGISTRATION or is full.
var ErrNoSlot = common.Conflict("Tournament has no open slot")
