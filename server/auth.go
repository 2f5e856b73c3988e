package server

import (
	"crypto/rand"
	"crypto/sha1"
	"crypto/subtle"
	"fmt"

	log "github.com/sirupsen/logrus"
)

func randomKey() []byte {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return []byte(fmt.Sprintf("%x", b))
}

// sharedKey gets the api key clients have to present. A configured passphrase is used
// when there's no api key, through the first 16 bytes of its sha1.
func (s *Server) sharedKey() []byte {
	if len(s.Params.APIKey) > 0 {
		return s.Params.APIKey
	}
	hash := sha1.Sum([]byte(s.Params.Passphrase))
	return []byte(fmt.Sprintf("%x", hash[0:16]))
}

func (s *Server) checkAPIKey(inputKey string) bool {
	if inputKey == "" {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(inputKey), s.sharedKey()) == 1 {
		return true
	}
	log.Warn("Incorrect api key")
	return false
}
