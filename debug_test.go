package koipond

import "testing"

func TestCountLayers(t *testing.T) {
	cmds := []RenderCommand{
		{Layer: LayerFish}, {Layer: LayerFish}, {Layer: LayerPetals}, {Layer: layerCount + 3},
	}
	counts := countLayers(cmds)
	if counts[LayerFish] != 2 || counts[LayerPetals] != 1 || counts[LayerWater] != 0 {
		t.Errorf("counts = %v", counts)
	}
}

func TestFormatLayerCounts(t *testing.T) {
	var counts [layerCount]int
	if got := formatLayerCounts(counts); got != "" {
		t.Errorf("empty counts = %q", got)
	}
	counts[LayerWater] = 1
	counts[LayerFish] = 7
	if got, want := formatLayerCounts(counts), "water=1 fish=7"; got != want {
		t.Errorf("formatLayerCounts = %q, want %q", got, want)
	}
}
