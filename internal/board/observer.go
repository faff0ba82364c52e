package board

// Observer receives notifications about notable board events.
// Implementations must not mutate the board.
type Observer interface {
	OnSpawn(template string)
	OnSpawnFailed(template string)
	OnLinesCleared(rows int)
	OnSplit()
	OnChainBanked(chain, delta int)
	OnFault(kind FaultKind)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) OnSpawn(string)         {}
func (NopObserver) OnSpawnFailed(string)   {}
func (NopObserver) OnLinesCleared(int)     {}
func (NopObserver) OnSplit()               {}
func (NopObserver) OnChainBanked(int, int) {}
func (NopObserver) OnFault(FaultKind)      {}
