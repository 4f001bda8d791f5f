//go:build !windows

package secrets

func encrypt(plain []byte) ([]byte, error) {
	return append([]byte(nil), plain...), nil
}

func decrypt(sealed []byte) ([]byte, error) {
	return append([]byte(nil), sealed...), nil
}
