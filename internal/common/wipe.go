// Package common holds helpers shared by the console and the services.
package common

// WipeByteArray overwrites b with zeros. It is used on passwords once they
// have been sent.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
