package controller

import (
	"github.com/ndkhanh/quizroom/internal/model"
	"github.com/ndkhanh/quizroom/internal/wire"
)

// handleDisconnect implements spec.md §4.4.13. It is registered with the
// transport's disconnect hook, fired once a connection's socket closes.
//
// Two cases: every Session the connection owns is torn down (case 1); only
// if it owned none, every Session the connection is present in as a
// participant has that participant removed (case 2).
func (c *Controller) handleDisconnect(connID string) {
	ownedAny := false

	for sessionID, actor := range c.registry.All() {
		var isOwner bool
		actor.Do(func(s *model.Session) {
			isOwner = s.IsOwner(connID)
		})
		if !isOwner {
			continue
		}
		ownedAny = true

		actor.Do(func(s *model.Session) {
			s.ForceEnd()
		})
		c.registry.Remove(sessionID)
		c.transport.EmitToRoom(sessionID, wire.Success(wire.BroadcastSessionEnded, &sessionID, nil))
		c.transport.ForceAllInRoomToLeave(sessionID)
	}

	if ownedAny {
		return
	}

	for sessionID, actor := range c.registry.All() {
		var (
			user  model.User
			found bool
		)
		actor.Do(func(s *model.Session) {
			user, found = s.FindUserByID(connID)
			if found {
				s.RemoveUser(user.Name)
			}
		})
		if !found {
			continue
		}
		c.transport.LeaveRoom(sessionID, connID)
		c.transport.EmitToRoom(sessionID, wire.Success(wire.BroadcastUserDisconnected, &sessionID, wire.NameData{Name: user.Name}))
	}
}
