package diag

import "testing"

func TestDetailKeyConstants(t *testing.T) {
	// Verify all standard detail keys are non-empty and follow naming conventions
	keys := []struct {
		name  string
		value string
	}{
		{"DetailKeyExpected", DetailKeyExpected},
		{"DetailKeyGot", DetailKeyGot},
		{"DetailKeyTypeName", DetailKeyTypeName},
		{"DetailKeyPropertyName", DetailKeyPropertyName},
		{"DetailKeyField", DetailKeyField},
		{"DetailKeyIndex", DetailKeyIndex},
		{"DetailKeyContext", DetailKeyContext},
		{"DetailKeyId", DetailKeyId},
		{"DetailKeyFormat", DetailKeyFormat},
		{"DetailKeyReason", DetailKeyReason},
	}

	for _, k := range keys {
		t.Run(k.name, func(t *testing.T) {
			if k.value == "" {
				t.Errorf("%s is empty", k.name)
			}
			// Verify lower_snake_case (no uppercase letters)
			for _, r := range k.value {
				if r >= 'A' && r <= 'Z' {
					t.Errorf("%s contains uppercase: %q", k.name, k.value)
					break
				}
			}
		})
	}
}

func TestDetailKeyConstants_Uniqueness(t *testing.T) {
	keys := []string{
		DetailKeyExpected,
		DetailKeyGot,
		DetailKeyTypeName,
		DetailKeyPropertyName,
		DetailKeyField,
		DetailKeyIndex,
		DetailKeyContext,
		DetailKeyId,
		DetailKeyFormat,
		DetailKeyReason,
	}

	seen := make(map[string]bool)
	for _, k := range keys {
		if seen[k] {
			t.Errorf("duplicate key: %q", k)
		}
		seen[k] = true
	}
}

func TestExpectedGot(t *testing.T) {
	details := ExpectedGot("string", "int")

	if len(details) != 2 {
		t.Fatalf("ExpectedGot returned %d details; want 2", len(details))
	}

	if details[0].Key != DetailKeyExpected {
		t.Errorf("first detail key = %q; want %q", details[0].Key, DetailKeyExpected)
	}
	if details[0].Value != "string" {
		t.Errorf("first detail value = %q; want %q", details[0].Value, "string")
	}

	if details[1].Key != DetailKeyGot {
		t.Errorf("second detail key = %q; want %q", details[1].Key, DetailKeyGot)
	}
	if details[1].Value != "int" {
		t.Errorf("second detail value = %q; want %q", details[1].Value, "int")
	}
}

func TestTypeProp(t *testing.T) {
	details := TypeProp("Person", "name")

	if len(details) != 2 {
		t.Fatalf("TypeProp returned %d details; want 2", len(details))
	}

	if details[0].Key != DetailKeyTypeName {
		t.Errorf("first detail key = %q; want %q", details[0].Key, DetailKeyTypeName)
	}
	if details[0].Value != "Person" {
		t.Errorf("first detail value = %q; want %q", details[0].Value, "Person")
	}

	if details[1].Key != DetailKeyPropertyName {
		t.Errorf("second detail key = %q; want %q", details[1].Key, DetailKeyPropertyName)
	}
	if details[1].Value != "name" {
		t.Errorf("second detail value = %q; want %q", details[1].Value, "name")
	}
}

func TestTypeField(t *testing.T) {
	details := TypeField("Car", "invalidField")

	if len(details) != 2 {
		t.Fatalf("TypeField returned %d details; want 2", len(details))
	}

	if details[0].Key != DetailKeyTypeName {
		t.Errorf("first detail key = %q; want %q", details[0].Key, DetailKeyTypeName)
	}
	if details[0].Value != "Car" {
		t.Errorf("first detail value = %q; want %q", details[0].Value, "Car")
	}

	if details[1].Key != DetailKeyField {
		t.Errorf("second detail key = %q; want %q", details[1].Key, DetailKeyField)
	}
	if details[1].Value != "invalidField" {
		t.Errorf("second detail value = %q; want %q", details[1].Value, "invalidField")
	}
}

func TestDetail_ZeroValue(t *testing.T) {
	var d Detail
	if d.Key != "" {
		t.Errorf("zero Detail.Key = %q; want empty", d.Key)
	}
	if d.Value != "" {
		t.Errorf("zero Detail.Value = %q; want empty", d.Value)
	}
}
