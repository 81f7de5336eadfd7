package causalproof

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// EncodeHeader renders proof as base64(utf8(canonical_json(proof)))
// for attachment to request/response metadata (spec.md §4.J).
// Canonical JSON here is exactly json.Marshal of the typed struct —
// field order is fixed by the struct definition, so the same proof
// value always encodes to the same bytes.
func EncodeHeader(proof *Proof) (string, error) {
	raw, err := json.Marshal(proof)
	if err != nil {
		return "", errInternal("failed to marshal proof", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodeHeader reverses EncodeHeader and re-validates the parsed value
// against the full proof shape before returning it. A schema mismatch
// at any level — missing field, wrong JSON type, missing nested
// targetEvent field — is a hard decode-failed error.
func DecodeHeader(text string) (*Proof, error) {
	raw, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, errDecodeFailed("header text is not valid base64", err)
	}

	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, errDecodeFailed("header does not decode to a JSON object", err)
	}
	if err := validateProofShape(generic); err != nil {
		return nil, errDecodeFailed(err.Error(), nil)
	}

	var proof Proof
	if err := json.Unmarshal(raw, &proof); err != nil {
		return nil, errDecodeFailed("proof failed to unmarshal after shape validation", err)
	}
	return &proof, nil
}

func validateProofShape(v map[string]any) error {
	targetEvent, err := requireObject(v, "targetEvent")
	if err != nil {
		return err
	}
	if err := validateTargetEventShape(targetEvent); err != nil {
		return err
	}

	proofPath, err := requireArray(v, "proofPath")
	if err != nil {
		return err
	}
	for i, step := range proofPath {
		obj, ok := step.(map[string]any)
		if !ok {
			return fmt.Errorf("proofPath[%d] is not an object", i)
		}
		for _, field := range []string{"eventHash", "siblingHash", "position"} {
			if err := requireString(obj, field); err != nil {
				return fmt.Errorf("proofPath[%d].%s", i, err.Error())
			}
		}
	}

	causalChain, err := requireArray(v, "causalChain")
	if err != nil {
		return err
	}
	for i, link := range causalChain {
		obj, ok := link.(map[string]any)
		if !ok {
			return fmt.Errorf("causalChain[%d] is not an object", i)
		}
		if err := requireString(obj, "eventHash"); err != nil {
			return fmt.Errorf("causalChain[%d].%s", i, err.Error())
		}
		if err := requireString(obj, "actionType"); err != nil {
			return fmt.Errorf("causalChain[%d].%s", i, err.Error())
		}
		if err := requireNumber(obj, "timestamp"); err != nil {
			return fmt.Errorf("causalChain[%d].%s", i, err.Error())
		}
		if err := requireNullableString(obj, "predecessorHash"); err != nil {
			return fmt.Errorf("causalChain[%d].%s", i, err.Error())
		}
	}

	if err := requireString(v, "treeRootHash"); err != nil {
		return err
	}
	if err := requireString(v, "agentSignature"); err != nil {
		return err
	}
	return nil
}

func validateTargetEventShape(v map[string]any) error {
	for _, field := range []string{"causalEventId", "agentId", "actionType", "payloadHash", "eventHash", "treeRootHash"} {
		if err := requireString(v, field); err != nil {
			return fmt.Errorf("targetEvent.%s", err.Error())
		}
	}
	if err := requireNullableString(v, "predecessorHash"); err != nil {
		return fmt.Errorf("targetEvent.%s", err.Error())
	}
	if err := requireNumber(v, "timestamp"); err != nil {
		return fmt.Errorf("targetEvent.%s", err.Error())
	}
	if err := requireNumber(v, "positionInTree"); err != nil {
		return fmt.Errorf("targetEvent.%s", err.Error())
	}
	return nil
}

func requireObject(v map[string]any, field string) (map[string]any, error) {
	raw, ok := v[field]
	if !ok {
		return nil, fmt.Errorf("missing required field %q", field)
	}
	obj, ok := raw.(map[string]any)
	if !ok || obj == nil {
		return nil, fmt.Errorf("field %q must be a non-null object", field)
	}
	return obj, nil
}

func requireArray(v map[string]any, field string) ([]any, error) {
	raw, ok := v[field]
	if !ok {
		return nil, fmt.Errorf("missing required field %q", field)
	}
	arr, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("field %q must be an array", field)
	}
	return arr, nil
}

func requireString(v map[string]any, field string) error {
	raw, ok := v[field]
	if !ok {
		return fmt.Errorf("missing required field %q", field)
	}
	if _, ok := raw.(string); !ok {
		return fmt.Errorf("field %q must be a string", field)
	}
	return nil
}

func requireNullableString(v map[string]any, field string) error {
	raw, ok := v[field]
	if !ok {
		return fmt.Errorf("missing required field %q", field)
	}
	if raw == nil {
		return nil
	}
	if _, ok := raw.(string); !ok {
		return fmt.Errorf("field %q must be a string or null", field)
	}
	return nil
}

func requireNumber(v map[string]any, field string) error {
	raw, ok := v[field]
	if !ok {
		return fmt.Errorf("missing required field %q", field)
	}
	if _, ok := raw.(float64); !ok {
		return fmt.Errorf("field %q must be a number", field)
	}
	return nil
}
