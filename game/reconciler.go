package game

import "github.com/rs/zerolog/log"

// reconcileDeparture handles both explicit leaves and dropped connections.
// A player that is already gone is ignored.
func (e *Engine) reconcileDeparture(connId string) {
	room, player := e.registry.Leave(connId)
	if room == nil {
		return
	}
	e.out.LeaveRoom(connId, room.id)
	log.Debug().Str("room", room.id).Str("player", player.id).Str("phase", string(room.phase)).Msg("player left")

	if room.isEmpty() {
		e.registry.Remove(room.id)
		return
	}

	wasDrawer := player.id == room.drawerId
	switch {
	case wasDrawer && room.phase == PhaseInRound:
		e.toRoom(room, EventSystem, systemData{Type: SystemDrawerLeft})
		e.endRound(room)
	case wasDrawer && room.phase == PhaseChoosingWord:
		e.toRoom(room, EventSystem, systemData{Type: SystemDrawerLeftDuringChoose})
		room.wordChoices = nil
		e.arm(room, intermissionTimer, e.rules.DrawerLeftDelay)
	case room.phase == PhaseInRound && room.everyoneGuessed():
		e.endRound(room)
	}

	room.reconcilePointers()
	e.broadcastPlayerList(room)
}
