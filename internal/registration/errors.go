package registration

import "github.com/DhavalSuthar-24/tourney/internal/common"

var (
	ErrNotPlayer          = common.Forbidden("Only players can register for tournaments")
	ErrRegistrationClosed = common.Conflict("Registration is not open for this tournament")
	ErrOrganizerSelf      = common.Conflict("Organizer cannot register in own tournament")
	ErrAlreadyRegistered  = common.Conflict("Already registered")
	ErrTournamentFull     = common.Conflict("Tournament is full")
	ErrPaymentRequired    = common.Conflict("Tournament requires payment, use checkout")
)
