package main

// ============================================================
// Bed Rot Simulator
// ============================================================

func main() {
	Execute()
}
