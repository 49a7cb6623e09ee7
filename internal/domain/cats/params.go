package cats

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// ParamKey es la key bajo la cual llegan anidados los campos del gato
// (form: cat[name], cat[breed]; json: {"cat": {...}}).
const ParamKey = "cat"

var errBadID = errors.New("invalid cat id")

// FormParams lee cat[...] del form y aplica la allow-list.
func FormParams(r *http.Request) (Params, error) {
	if err := r.ParseForm(); err != nil {
		return Params{}, err
	}
	prefix := ParamKey + "["
	raw := map[string]string{}
	for key, values := range r.PostForm {
		if !strings.HasPrefix(key, prefix) || !strings.HasSuffix(key, "]") || len(values) == 0 {
			continue
		}
		field := strings.TrimSuffix(strings.TrimPrefix(key, prefix), "]")
		raw[field] = values[0]
	}
	return ParamsFrom(raw), nil
}

// JSONParams decodifica {"cat": {...}}. Las demás keys de primer nivel
// (authenticity_token, commit, ...) se descartan sin mirarlas. Dentro de "cat"
// solo cuentan valores string; el resto se ignora igual que los campos fuera
// de la allow-list.
func JSONParams(body io.Reader) (Params, error) {
	var envelope map[string]json.RawMessage
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		return Params{}, err
	}
	nested, ok := envelope[ParamKey]
	if !ok {
		return Params{}, nil
	}
	var fields map[string]any
	if err := json.Unmarshal(nested, &fields); err != nil {
		return Params{}, err
	}
	raw := map[string]string{}
	for k, v := range fields {
		if s, ok := v.(string); ok {
			raw[k] = s
		}
	}
	return ParamsFrom(raw), nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, errBadID
	}
	return id, nil
}
