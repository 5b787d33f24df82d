package integrity

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/election-backend/internal/domain"
)

// FingerprintLength is the length of a hex-encoded SHA-256 digest.
const FingerprintLength = sha256.Size * 2

// NormalizeTime brings a timestamp to the precision PostgreSQL stores, so a
// fingerprint computed before insert still matches the row read back.
func NormalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// Fingerprint derives the tamper-evidence digest of a vote from its identity
// fields and creation time.
func Fingerprint(voterID, postID, candidateID uuid.UUID, createdAt time.Time) string {
	payload := strings.Join([]string{
		voterID.String(),
		postID.String(),
		candidateID.String(),
		NormalizeTime(createdAt).Format(time.RFC3339Nano),
	}, "|")
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// ValidateIntegrity recomputes the fingerprint from the stored fields and
// reports whether it still matches.
func ValidateIntegrity(v domain.Vote) bool {
	return v.Fingerprint == Fingerprint(v.VoterID, v.PostID, v.CandidateID, v.CreatedAt)
}

// wellFormed reports whether fp looks like a fingerprint at all.
func wellFormed(fp string) bool {
	if len(fp) != FingerprintLength {
		return false
	}
	_, err := hex.DecodeString(fp)
	return err == nil
}
