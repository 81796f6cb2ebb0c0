package transcalls_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"i18next-parser-go/packages/extractor/transcalls"
	"i18next-parser-go/packages/extractor/util"
)

func scan(source string, functions ...string) []transcalls.Call {
	if len(functions) == 0 {
		functions = []string{"t"}
	}
	file := util.NewParseSourceFile(source, "test.ts")
	return transcalls.Scan(file, transcalls.Options{Functions: functions})
}

func TestScan(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected []transcalls.Call
	}{
		{
			"simple key",
			`t("app.title")`,
			[]transcalls.Call{{Key: "app.title"}},
		},
		{
			"single quoted key",
			`t('app.title')`,
			[]transcalls.Call{{Key: "app.title"}},
		},
		{
			"string default value",
			`t("app.title", "My App")`,
			[]transcalls.Call{{Key: "app.title", DefaultValue: "My App"}},
		},
		{
			"options object with defaultValue",
			`t("app.title", { defaultValue: "My App" })`,
			[]transcalls.Call{{Key: "app.title", DefaultValue: "My App"}},
		},
		{
			"options object with count",
			`t("items", { count: items.length })`,
			[]transcalls.Call{{Key: "items", HasCount: true}},
		},
		{
			"options object with literal context",
			`t("friend", { context: "male" })`,
			[]transcalls.Call{{Key: "friend", Context: "male", HasContext: true}},
		},
		{
			"dynamic context degrades to no context",
			`t("friend", { context: gender })`,
			[]transcalls.Call{{Key: "friend"}},
		},
		{
			"three argument form",
			`t("greeting", "Hello!", { count: n })`,
			[]transcalls.Call{{Key: "greeting", DefaultValue: "Hello!", HasCount: true}},
		},
		{
			"member call matches on final segment",
			`i18next.t("deep.key")`,
			[]transcalls.Call{{Key: "deep.key"}},
		},
		{
			"dynamic keys are skipped",
			`t(someVariable); t("static.key")`,
			[]transcalls.Call{{Key: "static.key"}},
		},
		{
			"identifier suffix does not match",
			`cant("nope"); t("yes")`,
			[]transcalls.Call{{Key: "yes"}},
		},
		{
			"calls inside strings and comments are skipped",
			"const s = `t(\"nope\")`;\n// t(\"nor this\")\nt(\"real\")",
			[]transcalls.Call{{Key: "real"}},
		},
		{
			"escaped quotes in key",
			`t("it\'s fine")`,
			[]transcalls.Call{{Key: "it's fine"}},
		},
		{
			"multiple calls in order",
			`t("a"); t("b", "B"); t("c")`,
			[]transcalls.Call{{Key: "a"}, {Key: "b", DefaultValue: "B"}, {Key: "c"}},
		},
	}

	ignoreSpans := cmpopts.IgnoreFields(transcalls.Call{}, "Span")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := scan(tt.source)
			if diff := cmp.Diff(tt.expected, result, ignoreSpans); diff != "" {
				t.Errorf("Scan() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScanCustomFunctions(t *testing.T) {
	source := `translate("custom.key"); t("ignored")`
	calls := scan(source, "translate")
	if len(calls) != 1 || calls[0].Key != "custom.key" {
		t.Fatalf("expected a single custom.key call, got %+v", calls)
	}
}

func TestScanSpans(t *testing.T) {
	calls := scan("const a = 1;\nt(\"key\")")
	if len(calls) != 1 {
		t.Fatalf("expected one call, got %d", len(calls))
	}
	span := calls[0].Span
	if span == nil || span.Start == nil {
		t.Fatal("expected a source span")
	}
	if span.Start.Line != 1 || span.Start.Col != 0 {
		t.Errorf("span start = %d:%d, want 1:0", span.Start.Line, span.Start.Col)
	}
}
