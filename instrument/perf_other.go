//go:build !linux

package instrument

func CountInstructions(f func() error) (count uint64, err error) {
	err = f()
	return
}
