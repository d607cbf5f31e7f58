package validate_test

import (
	"testing"

	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/validate"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

type submit struct {
	From      string `json:"from" validate:"required"`
	To        string `json:"to" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}

func TestCheck(t *testing.T) {
	t.Log("Given the need to validate request models.")
	{
		if err := validate.Check(submit{From: "a", To: "b", Signature: "s"}); err != nil {
			t.Fatalf("\t%s\tShould accept a complete model: %v", failed, err)
		}
		t.Logf("\t%s\tShould accept a complete model.", success)

		err := validate.Check(submit{From: "a"})
		if !validate.IsFieldErrors(err) {
			t.Fatalf("\t%s\tShould get field errors: %v", failed, err)
		}
		t.Logf("\t%s\tShould get field errors.", success)

		fields := validate.GetFieldErrors(err).Fields()
		if len(fields) != 2 || fields["to"] == "" || fields["signature"] == "" {
			t.Fatalf("\t%s\tShould name the json fields: got %v", failed, fields)
		}
		t.Logf("\t%s\tShould name the json fields.", success)

		if exp := "to is a required field"; fields["to"] != exp {
			t.Fatalf("\t%s\tShould translate the message: got %q, exp %q", failed, fields["to"], exp)
		}
		t.Logf("\t%s\tShould translate the message.", success)
	}
}
