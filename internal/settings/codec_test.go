package settings

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"badrefining/pkg/domain"
)

func customSettings() domain.Settings {
	s := domain.DefaultSettings()
	s.ProductionBlockOperationalPowerConsumptionFactor = 3
	s.OxygenGeneratorIceToGasRatioFactor = 0.25
	s.YieldFactorOverrides = []domain.YieldFactorOverride{
		{BlueprintName: "UraniumOreToIngot", YieldFactor: 0.1},
		{BlueprintName: "GoldOreToIngot", YieldFactor: 0.2},
	}
	return s
}

func TestCodecRoundTrip(t *testing.T) {
	for _, name := range []string{"Settings.xml", "Settings.yaml", "Settings.YML", "Settings.json"} {
		t.Run(name, func(t *testing.T) {
			codec, err := CodecFor(name)
			if err != nil {
				t.Fatalf("codec: %v", err)
			}
			data, err := codec.Encode(customSettings())
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			got, err := codec.Decode(data)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if diff := cmp.Diff(customSettings(), got); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCodecForUnknownExtension(t *testing.T) {
	for _, name := range []string{"Settings", "Settings.toml", ""} {
		if _, err := CodecFor(name); !errors.Is(err, ErrUnsupportedFormat) {
			t.Fatalf("%q: expected ErrUnsupportedFormat, got %v", name, err)
		}
	}
}

func TestXMLLayout(t *testing.T) {
	data, err := xmlCodec{}.Encode(domain.DefaultSettings())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	text := string(data)
	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		"<ModSettings>",
		"<ProductionBlockOperationalPowerConsumptionFactor>1.5</ProductionBlockOperationalPowerConsumptionFactor>",
		"<OxygenGeneratorIceToGasRatioFactor>0.1</OxygenGeneratorIceToGasRatioFactor>",
		"<YieldFactorOverrides>",
		"<BlueprintYieldFactor>",
		"<BlueprintName>UraniumOreToIngot</BlueprintName>",
		"<YieldFactor>0.1</YieldFactor>",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in:\n%s", want, text)
		}
	}
}

func TestXMLDecodeKeepsDefaultsForMissingElements(t *testing.T) {
	doc := `<?xml version="1.0" encoding="utf-16"?>
<ModSettings xmlns:xsd="http://www.w3.org/2001/XMLSchema" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
  <LargeRefineryIngotYieldFactor>0.8</LargeRefineryIngotYieldFactor>
</ModSettings>`
	got, err := xmlCodec{}.Decode([]byte(doc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := domain.DefaultSettings()
	want.LargeRefineryIngotYieldFactor = 0.8
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestXMLDecodeRejectsUnknownCharset(t *testing.T) {
	doc := `<?xml version="1.0" encoding="koi8-r"?><ModSettings/>`
	if _, err := (xmlCodec{}).Decode([]byte(doc)); err == nil {
		t.Fatalf("expected charset error")
	}
}

func TestXMLDecodeEmptyOverrideList(t *testing.T) {
	got, err := xmlCodec{}.Decode([]byte("<ModSettings><YieldFactorOverrides/></ModSettings>"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.YieldFactorOverrides == nil || len(got.YieldFactorOverrides) != 0 {
		t.Fatalf("expected present-but-empty overrides, got %#v", got.YieldFactorOverrides)
	}
}

func TestJSONDecodeKeepsDefaultsForMissingFields(t *testing.T) {
	got, err := jsonCodec{}.Decode([]byte(`{"oxygen_farm_max_gas_output_factor": 4}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := domain.DefaultSettings()
	want.OxygenFarmMaxGasOutputFactor = 4
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeErrors(t *testing.T) {
	codecs := []Codec{xmlCodec{}, yamlCodec{}, jsonCodec{}}
	for _, codec := range codecs {
		got, err := codec.Decode([]byte("{<not valid"))
		if err == nil {
			t.Fatalf("%s: expected decode error", codec.Name())
		}
		if diff := cmp.Diff(domain.Settings{}, got); diff != "" {
			t.Fatalf("%s: expected zero settings on error:\n%s", codec.Name(), diff)
		}
	}
}
