package lobby

import "errors"

var (
	// ErrInvalidBuyIn indicates a zero buy-in.
	ErrInvalidBuyIn = errors.New("lobby: invalid buy-in")

	// ErrInvalidMaxPlayers indicates a lobby size outside [2, 16].
	ErrInvalidMaxPlayers = errors.New("lobby: invalid max players")

	// ErrUnknownLobby indicates an identifier the ledger has never issued.
	ErrUnknownLobby = errors.New("lobby: unknown lobby")

	// ErrInactive indicates an operation on a cancelled lobby.
	ErrInactive = errors.New("lobby: lobby not active")

	// ErrResolved indicates an operation on an already-resolved lobby.
	ErrResolved = errors.New("lobby: lobby already resolved")

	// ErrFull indicates a join with no seats left.
	ErrFull = errors.New("lobby: lobby full")

	// ErrAlreadyMember indicates a double join.
	ErrAlreadyMember = errors.New("lobby: already a member")

	// ErrNotMember indicates a winner who never joined.
	ErrNotMember = errors.New("lobby: not a member")

	// ErrNotAuthorized indicates a privileged call from the wrong caller.
	ErrNotAuthorized = errors.New("lobby: caller not authorized")
)
