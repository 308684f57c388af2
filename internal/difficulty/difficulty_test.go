package difficulty_test

import (
	"testing"

	"go.followtheprocess.codes/cdlint/internal/difficulty"
	"go.followtheprocess.codes/cdlint/internal/syntax"
	"go.followtheprocess.codes/test"
)

func TestDescriptorMap(t *testing.T) {
	var m difficulty.DescriptorMap

	grunt := difficulty.DescriptorEntry{
		Name:       syntax.Wrap("ED_CustomGrunt", syntax.Span{Lo: 10, Hi: 26}),
		Descriptor: syntax.Defaulted(difficulty.DefaultEnemyDescriptor()),
	}
	tank := difficulty.DescriptorEntry{
		Name:       syntax.Wrap("ED_CustomTank", syntax.Span{Lo: 40, Hi: 55}),
		Descriptor: syntax.Defaulted(difficulty.DefaultEnemyDescriptor()),
	}

	test.True(t, m.Insert(grunt), test.Context("first insert must succeed"))
	test.True(t, m.Insert(tank), test.Context("second insert must succeed"))

	// Same name at a different span is still a duplicate
	duplicate := difficulty.DescriptorEntry{
		Name:       syntax.Wrap("ED_CustomGrunt", syntax.Span{Lo: 90, Hi: 106}),
		Descriptor: syntax.Defaulted(difficulty.DefaultEnemyDescriptor()),
	}
	test.True(t, !m.Insert(duplicate), test.Context("duplicate insert must be rejected"))

	test.Equal(t, m.Len(), 2)
	test.True(t, m.Contains("ED_CustomGrunt"), test.Context("Contains must find inserted names"))
	test.True(t, !m.Contains("ED_Missing"), test.Context("Contains must reject unknown names"))

	got, ok := m.Get("ED_CustomGrunt")
	test.True(t, ok, test.Context("Get must find inserted names"))
	test.Equal(t, got.Name.Span, syntax.Span{Lo: 10, Hi: 26}, test.Context("Get must return the first definition"))

	// Entries come back in insertion order
	entries := m.Entries()
	test.Equal(t, entries[0].Name.Val, "ED_CustomGrunt")
	test.Equal(t, entries[1].Name.Val, "ED_CustomTank")
}

func TestDefaults(t *testing.T) {
	cd := difficulty.Default()

	test.True(t, cd.Name.Span.IsDummy(), test.Context("defaulted fields must carry the dummy span"))
	test.True(t, cd.EscortMule.Span.IsDummy(), test.Context("defaulted fields must carry the dummy span"))

	mule := cd.EscortMule.Val
	test.Equal(t, mule.FriendlyFireModifier.Val, 0.1)
	test.Equal(t, mule.NeutralDamageModifier.Val, 0.1)
	test.Equal(t, mule.BigHitDamageModifier.Val, 0.5)
	test.Equal(t, mule.BigHitDamageReductionThreshold.Val, 0.0)

	test.Equal(t, cd.EnemyDescriptors.Val.Len(), 0)
}

func TestTables(t *testing.T) {
	test.Equal(t, len(difficulty.TopLevelFields), 46)
	test.Equal(t, len(difficulty.DescriptorFields), 14)
	test.Equal(t, len(difficulty.PawnStatNames), 48)
	test.Equal(t, len(difficulty.EscortMuleFields), 4)
}
