package olami

import (
	"fmt"

	"github.com/drewdunne/nlibot/internal/nli"
)

// ExtractIntent converts a payload into an Intent using its first semantic
// candidate. Later candidates are ignored; the service ranks them.
func ExtractIntent(p *Payload) (nli.Intent, error) {
	if p == nil {
		return nli.Intent{}, &nli.MalformedResponseError{Reason: "missing nli payload"}
	}
	if len(p.Semantic) == 0 {
		return nli.Intent{}, &nli.MalformedResponseError{Reason: "no semantic candidates"}
	}
	if p.DescObj == nil {
		return nli.Intent{}, &nli.MalformedResponseError{Reason: "missing desc_obj"}
	}

	first := p.Semantic[0]
	if first.Input == nil {
		return nli.Intent{}, &nli.MalformedResponseError{Reason: "first candidate has no input"}
	}
	if len(first.Modifier) == 0 {
		return nli.Intent{}, &nli.MalformedResponseError{Reason: "first candidate has no modifier"}
	}
	if first.Slots == nil {
		return nli.Intent{}, &nli.MalformedResponseError{Reason: "first candidate has no slots"}
	}

	params := make(map[string]string, len(first.Slots))
	for i, slot := range first.Slots {
		if slot.Name == nil {
			return nli.Intent{}, &nli.MalformedResponseError{Reason: fmt.Sprintf("slot %d has no name", i)}
		}
		if slot.Value == nil {
			return nli.Intent{}, &nli.MalformedResponseError{Reason: fmt.Sprintf("slot %q has no value", *slot.Name)}
		}
		params[*slot.Name] = *slot.Value
	}

	var response string
	if p.DescObj.Result != nil {
		response = *p.DescObj.Result
	}

	return nli.Intent{
		Input:      *first.Input,
		Response:   response,
		Action:     first.Modifier[0],
		Parameters: params,
	}, nil
}
