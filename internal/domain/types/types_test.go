package types_test

import (
	"encoding/json"
	"testing"

	types "github.com/okian/squad/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEntry(t *testing.T) {
	Convey("Given an Entry struct", t, func() {
		Convey("When encoding an entry with a name", func() {
			out, err := json.Marshal(types.Entry{Rank: 1, ID: "m-1", Name: "Grace", Score: 0.75})

			Convey("Then it uses snake case keys", func() {
				So(err, ShouldBeNil)
				So(string(out), ShouldEqual, `{"rank":1,"id":"m-1","name":"Grace","score":0.75}`)
			})
		})

		Convey("When encoding an entry without a name", func() {
			out, err := json.Marshal(types.Entry{Rank: 2, ID: "m-2"})

			Convey("Then the name is omitted", func() {
				So(err, ShouldBeNil)
				So(string(out), ShouldEqual, `{"rank":2,"id":"m-2","score":0}`)
			})
		})
	})
}
