package util

type Envelope map[string]any

// Response is the envelope every endpoint returns: a status flag, a
// human-readable message and an optional payload.
func Response(status bool, message string, data any) Envelope {
	e := Envelope{"status": status, "response": message}
	if data != nil {
		e["data"] = data
	}
	return e
}

func Error(message string) Envelope {
	return Response(false, message, nil)
}
