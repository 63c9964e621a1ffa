package domain

// Heal лечит, не превышая MaxHP. Возвращает фактически восстановленное здоровье.
func (s *CombatStats) Heal(amount int) int {
	before := s.HP
	s.HP = min(s.MaxHP, s.HP+amount)
	return s.HP - before
}

// IsDead - здоровье кончилось
func (s *CombatStats) IsDead() bool {
	return s.HP <= 0
}

// Sum возвращает сумму накопленного урона.
func (d SufferDamage) Sum() int {
	total := 0
	for _, a := range d.Amount {
		total += a
	}
	return total
}
