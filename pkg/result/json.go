package result

import "encoding/json"

type wire struct {
	IsSuccess     bool            `json:"isSuccess"`
	IsFailure     bool            `json:"isFailure"`
	CorrelationID string          `json:"correlationId,omitempty"`
	Error         any             `json:"error,omitempty"`
	Data          json.RawMessage `json:"data,omitempty"`
}

func (o outcome) wire() wire {
	return wire{IsSuccess: o.IsSuccess(), IsFailure: o.IsFailure(), CorrelationID: o.correlationID}
}

// MarshalJSON serializa el estado; "error" solo aparece en fallos.
func (r Result) MarshalJSON() ([]byte, error) {
	w := r.wire()
	if r.failure {
		w.Error = r.message
	}
	return json.Marshal(w)
}

// MarshalJSON serializa el estado; "data" solo en éxitos y "error" solo en fallos.
func (r ResultOf[T]) MarshalJSON() ([]byte, error) {
	w := r.wire()
	if r.failure {
		w.Error = r.message
		return json.Marshal(w)
	}
	data, err := json.Marshal(r.data)
	if err != nil {
		return nil, err
	}
	w.Data = data
	return json.Marshal(w)
}

// MarshalJSON serializa el estado con el error tipado en "error".
func (r ResultWith[T, E]) MarshalJSON() ([]byte, error) {
	w := r.wire()
	if r.failure {
		w.Error = r.errValue
		return json.Marshal(w)
	}
	data, err := json.Marshal(r.data)
	if err != nil {
		return nil, err
	}
	w.Data = data
	return json.Marshal(w)
}
