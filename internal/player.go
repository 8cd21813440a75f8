package internal

func NewPlayer(id, token, name string) *Player {
	return &Player{
		Id:        id,
		Token:     token,
		Name:      name,
		Connected: true,
		UsedWords: make(map[string]struct{}),
	}
}

// ResetRoundState clears the per-round fields. Elimination is game-scoped and left alone.
func (p *Player) ResetRoundState() {
	p.Score = 0
	p.KO = false
	p.UsedWords = make(map[string]struct{})
}

// ResetGameState prepares the player for a fresh game.
func (p *Player) ResetGameState() {
	p.ResetRoundState()
	p.Eliminated = false
}

func (p *Player) HasUsed(word string) bool {
	_, ok := p.UsedWords[word]
	return ok
}

func (p *Player) MarkUsed(word string) {
	if p.UsedWords == nil {
		p.UsedWords = make(map[string]struct{})
	}
	p.UsedWords[word] = struct{}{}
}

// Active reports whether the player still competes in the current game.
func (p *Player) Active() bool {
	return !p.Eliminated && !p.KO
}

func (p *Player) ToPlayerState() PlayerState {
	return PlayerState{
		ID:         p.Id,
		Name:       p.Name,
		Score:      p.Score,
		KO:         p.KO,
		Eliminated: p.Eliminated,
		Connected:  p.Connected,
	}
}
