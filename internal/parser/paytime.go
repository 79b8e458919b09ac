package parser

import (
	"time"

	"github.com/hanwen-zhu/billsnap/constants"
)

// epochFloor is 2000-01-01T00:00:00Z; anything earlier is a misparse.
const epochFloor int64 = 946684800

// futureSlack tolerates clock skew between device and receipt.
const futureSlack = 10 * time.Minute

// DecidePayTime picks the record's pay time: the extracted time when it is
// plausible, else the screenshot capture time under the same bound, else
// now. The source tag lets consumers tell a trusted parse from a guess.
func DecidePayTime(extracted, capture *int64, now time.Time) (int64, constants.TimeSource) {
	ceiling := now.Add(futureSlack).Unix()
	if extracted != nil && *extracted >= epochFloor && *extracted <= ceiling {
		return *extracted, constants.TimeSourceOCR
	}
	if capture != nil && *capture >= epochFloor && *capture <= ceiling {
		return *capture, constants.TimeSourceCapture
	}
	return now.Unix(), constants.TimeSourceNow
}
