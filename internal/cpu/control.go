package cpu

// CPL, SCF, CCF, NEG: accumulator/flag-only control instructions that don't
// fit the ADD/SUB family shape.

func (s *State) execCPL() {
	s.Main.A ^= 0xFF
	s.Main.F = (s.Main.F & (FlagC | FlagP | FlagZ | FlagS)) | (s.Main.A & (FlagX | FlagY)) | FlagN | FlagH
}

func (s *State) execSCF() {
	s.Main.F = (s.Main.F & (FlagP | FlagZ | FlagS)) | (s.Main.A & (FlagX | FlagY)) | FlagC
}

func (s *State) execCCF() {
	oldC := s.Main.F & FlagC
	s.Main.F = (s.Main.F & (FlagP | FlagZ | FlagS)) | (s.Main.A & (FlagX | FlagY))
	if oldC != 0 {
		s.Main.F |= FlagH
	} else {
		s.Main.F |= FlagC
	}
}

func (s *State) execNEG() {
	old := s.Main.A
	s.Main.A = 0
	s.execSub(old)
}
