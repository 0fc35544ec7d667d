package bitbang

type errGeneric uint8

// Generic errors common to the protocol engines and their collaborators.
const (
	_                errGeneric = iota // non-initialized err
	ErrInvalidConfig                   // invalid configuration
	ErrInvalidAddr                     // invalid address
	ErrUnsupported                     // unsupported
	ErrShortBuffer                     // short buffer
	ErrBadCRC                          // incorrect checksum
	ErrNoDevice                        // no device at address
)

func (err errGeneric) Error() string {
	return err.String()
}
