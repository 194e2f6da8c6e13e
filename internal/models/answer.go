package models

import (
	"encoding/json"
	"fmt"
)

type ResponseType string

const (
	ResponseText        ResponseType = "text"
	ResponseChoice      ResponseType = "choice"
	ResponseMultiSelect ResponseType = "multi_select"
	ResponseNumeric     ResponseType = "numeric"
)

// Response is the learner's current answer for one question. The set of
// implementations is closed; scoring switches over them exhaustively.
type Response interface {
	Type() ResponseType
	// clone returns a deep copy so snapshots never alias live state.
	clone() Response
}

// TextResponse holds free text (essay, short answer).
type TextResponse struct {
	Text string `json:"text"`
}

// ChoiceResponse holds one selected option (dropdown, proctored exam).
type ChoiceResponse struct {
	Option string `json:"option"`
}

// MultiSelectResponse holds an insertion-ordered set of ids (hotspots,
// scenario actions).
type MultiSelectResponse struct {
	IDs []string `json:"ids"`
}

// NumericResponse holds the raw typed string; it is parsed only when scored.
type NumericResponse struct {
	Raw string `json:"raw"`
}

func (TextResponse) Type() ResponseType        { return ResponseText }
func (ChoiceResponse) Type() ResponseType      { return ResponseChoice }
func (MultiSelectResponse) Type() ResponseType { return ResponseMultiSelect }
func (NumericResponse) Type() ResponseType     { return ResponseNumeric }

func (r TextResponse) clone() Response    { return r }
func (r ChoiceResponse) clone() Response  { return r }
func (r NumericResponse) clone() Response { return r }
func (r MultiSelectResponse) clone() Response {
	return MultiSelectResponse{IDs: append([]string(nil), r.IDs...)}
}

// Contains reports whether id is selected.
func (r MultiSelectResponse) Contains(id string) bool {
	for _, v := range r.IDs {
		if v == id {
			return true
		}
	}
	return false
}

// Toggle flips membership of id and returns the new set.
func (r MultiSelectResponse) Toggle(id string) MultiSelectResponse {
	out := make([]string, 0, len(r.IDs)+1)
	found := false
	for _, v := range r.IDs {
		if v == id {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, id)
	}
	return MultiSelectResponse{IDs: out}
}

// Answers maps question index to response.
type Answers map[int]Response

// Clone deep-copies the answer map.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v.clone()
	}
	return out
}

type responseEnvelope struct {
	Type ResponseType    `json:"type"`
	Data json.RawMessage `json:"data"`
}

// MarshalJSON encodes answers as {"<index>": {"type": ..., "data": ...}}.
func (a Answers) MarshalJSON() ([]byte, error) {
	out := make(map[string]responseEnvelope, len(a))
	for k, v := range a {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response %d: %w", k, err)
		}
		out[fmt.Sprintf("%d", k)] = responseEnvelope{Type: v.Type(), Data: data}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the envelope form written by MarshalJSON.
func (a *Answers) UnmarshalJSON(b []byte) error {
	var raw map[string]responseEnvelope
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(Answers, len(raw))
	for k, env := range raw {
		var idx int
		if _, err := fmt.Sscanf(k, "%d", &idx); err != nil {
			return fmt.Errorf("invalid answer index %q: %w", k, err)
		}
		r, err := decodeResponse(env)
		if err != nil {
			return fmt.Errorf("answer %d: %w", idx, err)
		}
		out[idx] = r
	}
	*a = out
	return nil
}

func decodeResponse(env responseEnvelope) (Response, error) {
	switch env.Type {
	case ResponseText:
		var r TextResponse
		err := json.Unmarshal(env.Data, &r)
		return r, err
	case ResponseChoice:
		var r ChoiceResponse
		err := json.Unmarshal(env.Data, &r)
		return r, err
	case ResponseMultiSelect:
		var r MultiSelectResponse
		err := json.Unmarshal(env.Data, &r)
		return r, err
	case ResponseNumeric:
		var r NumericResponse
		err := json.Unmarshal(env.Data, &r)
		return r, err
	}
	return nil, fmt.Errorf("unknown response type %q", env.Type)
}
