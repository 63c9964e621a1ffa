package domain

// Порядок отрисовки: меньше - выше
const (
	RenderOrderPlayer  = 0
	RenderOrderMonster = 1
	RenderOrderItem    = 2
)

// Параметры восприятия
const (
	VisionRadius = 8
	// MeleeReach - дистанция атаки, включая диагонали
	MeleeReach = 1.5
)
