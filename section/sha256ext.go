package section

import "github.com/teeworlds-community/ddnetdemo/protocol"

// SHA256Extension is the optional marker, appearing immediately after
// the timeline marker table, that carries the map blob's SHA-256 digest.
// Its presence is signaled by a fixed UUID; a reader that fails to match
// it must rewind and treat the bytes as the start of the map blob
// instead.
type SHA256Extension struct {
	Digest [SHA256DigestSize]byte
}

// Bytes serializes the extension marker (UUID followed by digest).
func (e SHA256Extension) Bytes() []byte {
	b := make([]byte, 0, SHA256MarkerSize+SHA256DigestSize)
	b = append(b, protocol.SHA256ExtensionUUID[:]...)
	b = append(b, e.Digest[:]...)

	return b
}

// ProbeSHA256Extension checks whether data begins with the SHA-256
// extension's marker UUID. If so, it returns the parsed extension and
// the number of bytes consumed; otherwise ok is false and the reader
// should treat data as the start of the map blob.
func ProbeSHA256Extension(data []byte) (ext SHA256Extension, consumed int, ok bool) {
	if len(data) < SHA256MarkerSize+SHA256DigestSize {
		return SHA256Extension{}, 0, false
	}

	var marker protocol.UUID
	copy(marker[:], data[:SHA256MarkerSize])
	if marker != protocol.SHA256ExtensionUUID {
		return SHA256Extension{}, 0, false
	}

	copy(ext.Digest[:], data[SHA256MarkerSize:SHA256MarkerSize+SHA256DigestSize])

	return ext, SHA256MarkerSize + SHA256DigestSize, true
}
