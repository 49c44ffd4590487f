package platform

// Virtual-key codes used by platform adapters that synthesize key
// notifications. The core treats key codes as opaque; these only give the
// adapters and consumers a shared vocabulary.
const (
	VKBack    uint8 = 0x08
	VKTab     uint8 = 0x09
	VKReturn  uint8 = 0x0D
	VKShift   uint8 = 0x10
	VKControl uint8 = 0x11
	VKMenu    uint8 = 0x12
	VKPause   uint8 = 0x13
	VKEscape  uint8 = 0x1B
	VKSpace   uint8 = 0x20
	VKPrior   uint8 = 0x21
	VKNext    uint8 = 0x22
	VKEnd     uint8 = 0x23
	VKHome    uint8 = 0x24
	VKLeft    uint8 = 0x25
	VKUp      uint8 = 0x26
	VKRight   uint8 = 0x27
	VKDown    uint8 = 0x28
	VKInsert  uint8 = 0x2D
	VKDelete  uint8 = 0x2E
	VK0       uint8 = 0x30
	VKA       uint8 = 0x41
	VKF1      uint8 = 0x70

	VKOEMPlus   uint8 = 0xBB
	VKOEMComma  uint8 = 0xBC
	VKOEMMinus  uint8 = 0xBD
	VKOEMPeriod uint8 = 0xBE
	VKOEM2      uint8 = 0xBF // '/?'
)

// VKForRune returns the virtual-key code that produces r on a US layout,
// and whether one exists.
func VKForRune(r rune) (uint8, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return VKA + uint8(r-'a'), true
	case r >= 'A' && r <= 'Z':
		return VKA + uint8(r-'A'), true
	case r >= '0' && r <= '9':
		return VK0 + uint8(r-'0'), true
	}
	switch r {
	case ' ':
		return VKSpace, true
	case '=', '+':
		return VKOEMPlus, true
	case ',', '<':
		return VKOEMComma, true
	case '-', '_':
		return VKOEMMinus, true
	case '.', '>':
		return VKOEMPeriod, true
	case '/', '?':
		return VKOEM2, true
	}
	return 0, false
}

// VKFunction returns the code for function key Fn, 1 <= n <= 24.
func VKFunction(n int) (uint8, bool) {
	if n < 1 || n > 24 {
		return 0, false
	}
	return VKF1 + uint8(n-1), true
}
