package room

import "github.com/bela4us/belotsrv/internal/belotstate"

// Invite creates or refreshes a pending invitation for inviteeID, valid for
// 24 hours. Only meaningful for Private rooms; anyone may join a public one.
func (r *Room) Invite(inviterID, inviteeID string) *belotstate.GameError {
	if r.Status == StatusClosed {
		return belotstate.New(belotstate.ErrWrongPhase, "room is closed")
	}
	if !r.IsMember(inviterID) {
		return belotstate.New(belotstate.ErrNotMember, "only members may invite")
	}
	if r.IsMember(inviteeID) {
		return belotstate.New(belotstate.ErrDuplicate, "invitee is already a member")
	}
	now := r.now()
	r.invitations[inviteeID] = &Invitation{
		InviteeID: inviteeID,
		Status:    InvitationPending,
		CreatedAt: now,
		ExpiresAt: now.Add(invitationTTL),
	}
	r.appendLog("%s invited %s", inviterID, inviteeID)
	return nil
}

// expireIfStale lazily flips a pending invitation past its TTL to Expired.
func (r *Room) expireIfStale(inv *Invitation) {
	if inv.Status == InvitationPending && r.now().After(inv.ExpiresAt) {
		inv.Status = InvitationExpired
	}
}

// AcceptInvitation seats inviteeID, subject to capacity, consuming a
// pending, non-expired invitation.
func (r *Room) AcceptInvitation(inviteeID string) *belotstate.GameError {
	inv, ok := r.invitations[inviteeID]
	if !ok {
		return belotstate.New(belotstate.ErrNotFound, "no invitation for this player")
	}
	r.expireIfStale(inv)
	if inv.Status != InvitationPending {
		return belotstate.New(belotstate.ErrConflict, "invitation is not pending")
	}
	if err := r.seat(inviteeID); err != nil {
		return err
	}
	inv.Status = InvitationAccepted
	return nil
}

// DeclineInvitation marks a pending invitation declined; the room is
// unchanged otherwise.
func (r *Room) DeclineInvitation(inviteeID string) *belotstate.GameError {
	inv, ok := r.invitations[inviteeID]
	if !ok {
		return belotstate.New(belotstate.ErrNotFound, "no invitation for this player")
	}
	r.expireIfStale(inv)
	if inv.Status != InvitationPending {
		return belotstate.New(belotstate.ErrConflict, "invitation is not pending")
	}
	inv.Status = InvitationDeclined
	r.appendLog("%s declined invitation", inviteeID)
	return nil
}

// Invitation returns the current invitation state for inviteeID, if any.
func (r *Room) Invitation(inviteeID string) (Invitation, bool) {
	inv, ok := r.invitations[inviteeID]
	if !ok {
		return Invitation{}, false
	}
	r.expireIfStale(inv)
	return *inv, true
}
