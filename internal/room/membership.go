package room

import "github.com/bela4us/belotsrv/internal/belotstate"

// Join seats playerID directly. For a Private room, a non-creator with no
// accepted invitation must go through Invite/AcceptInvitation instead.
func (r *Room) Join(playerID string) *belotstate.GameError {
	if r.Status == StatusFull {
		return belotstate.New(belotstate.ErrCapacity, "room is full")
	}
	if r.Status != StatusOpen {
		return belotstate.New(belotstate.ErrWrongPhase, "room is not open")
	}
	if r.IsMember(playerID) {
		return belotstate.New(belotstate.ErrDuplicate, "already a member")
	}
	if r.Private && playerID != r.Creator {
		inv, ok := r.invitations[playerID]
		if !ok || inv.Status != InvitationAccepted {
			return belotstate.New(belotstate.ErrForbidden, "private room requires an accepted invitation")
		}
	}
	return r.seat(playerID)
}

func (r *Room) seat(playerID string) *belotstate.GameError {
	if len(r.members) >= maxMembers {
		return belotstate.New(belotstate.ErrCapacity, "room is full")
	}
	r.members = append(r.members, Member{PlayerID: playerID, JoinedAt: r.now()})
	r.appendLog("%s joined", playerID)
	if len(r.members) == maxMembers {
		r.Status = StatusFull
	}
	return nil
}

// Leave removes playerID from the room. If the creator leaves with others
// remaining, ownership transfers to the earliest-joined remaining member.
// A room left empty stays Open (the Session Manager reaps it after its idle
// window, per SPEC_FULL §4.6).
func (r *Room) Leave(playerID string) *belotstate.GameError {
	idx := r.memberIndex(playerID)
	if idx < 0 {
		return belotstate.New(belotstate.ErrNotMember, "not a member")
	}
	r.members = append(r.members[:idx], r.members[idx+1:]...)
	r.appendLog("%s left", playerID)

	if r.Status == StatusFull {
		r.Status = StatusOpen
	}

	if playerID == r.Creator && len(r.members) > 0 {
		r.Creator = r.members[0].PlayerID
		r.appendLog("ownership transferred to %s", r.Creator)
	}
	return nil
}

// ToggleReady flips playerID's ready flag.
func (r *Room) ToggleReady(playerID string) *belotstate.GameError {
	idx := r.memberIndex(playerID)
	if idx < 0 {
		return belotstate.New(belotstate.ErrNotMember, "not a member")
	}
	r.members[idx].Ready = !r.members[idx].Ready
	r.appendLog("%s ready=%v", playerID, r.members[idx].Ready)
	return nil
}

// AllReady reports whether the room is full and every member is ready.
func (r *Room) AllReady() bool {
	if len(r.members) != maxMembers {
		return false
	}
	for _, m := range r.members {
		if !m.Ready {
			return false
		}
	}
	return true
}

// CanStart reports whether StartGame would currently succeed.
func (r *Room) CanStart() bool {
	return (r.Status == StatusOpen || r.Status == StatusFull) && r.AllReady()
}

// StartGame transitions the room into Starting, the terminal pre-Closed
// state once its Game has been created by the Session Manager. It may only
// be called once; a second call returns ErrWrongPhase.
func (r *Room) StartGame() *belotstate.GameError {
	if !r.CanStart() {
		return belotstate.New(belotstate.ErrWrongPhase, "room is not ready to start")
	}
	r.Status = StatusStarting
	r.appendLog("game starting")
	return nil
}

// PlayerIDs returns the seated player ids in join order.
func (r *Room) PlayerIDs() []string {
	ids := make([]string, len(r.members))
	for i, m := range r.members {
		ids[i] = m.PlayerID
	}
	return ids
}

// Close marks the room terminal once its Game has actually been created.
func (r *Room) Close() *belotstate.GameError {
	if r.Status != StatusStarting {
		return belotstate.New(belotstate.ErrWrongPhase, "room is not starting")
	}
	r.Status = StatusClosed
	r.appendLog("room closed")
	return nil
}
