package gacha

// RefreshIfNewDay regenerates the daily shop and quests and resets the
// visited biomes when the day of year differs from the last refresh. It
// reports whether a refresh happened. On the same day it only restocks a
// shop that is empty, as after loading a save without one.
func (e *Engine) RefreshIfNewDay() bool {
	st := e.state
	today := e.clock.Now().YearDay()
	if st.TodayDate == today {
		if len(st.DailyShop) == 0 && len(e.catalog.Shop) > 0 {
			st.DailyShop = e.sampleShop()
			e.logger.Debug("restocked empty shop", "day", today)
		}
		return false
	}

	st.DailyShop = e.sampleShop()
	st.QuestStatus = make(map[string]bool, len(e.quests))
	for _, q := range e.quests {
		st.QuestStatus[q.Name] = false
	}
	st.VisitedBiomes = map[string]bool{st.CurrentBiome: true}
	st.TodayDate = today

	e.emit(EventNewDay, "", "")
	e.logger.Debug("daily refresh", "day", today)
	return true
}

// sampleShop picks 1..min(ShopPicksPerTier, len) distinct offers per tier.
func (e *Engine) sampleShop() map[string][]ShopOffer {
	shop := make(map[string][]ShopOffer, len(e.catalog.Shop))
	for _, tier := range e.catalog.Shop {
		limit := min(e.catalog.Settings.ShopPicksPerTier, len(tier.Items))
		if limit == 0 {
			shop[tier.Name] = []ShopOffer{}
			continue
		}
		k := 1 + e.rng.IntN(limit)

		idx := make([]int, len(tier.Items))
		for i := range idx {
			idx[i] = i
		}
		offers := make([]ShopOffer, 0, k)
		for i := 0; i < k; i++ {
			j := i + e.rng.IntN(len(idx)-i)
			idx[i], idx[j] = idx[j], idx[i]
			it := tier.Items[idx[i]]
			offers = append(offers, ShopOffer{Item: it.Name, RequiredAura: it.RequiredAura})
		}
		shop[tier.Name] = offers
	}
	return shop
}

// UpdateWeather picks a new weather once the configured interval has
// passed since the last interval change, or if it never changed.
func (e *Engine) UpdateWeather() bool {
	st := e.state
	now := e.now()
	if st.WeatherLastChange != 0 && now-st.WeatherLastChange <= e.catalog.Settings.WeatherIntervalSeconds {
		return false
	}

	w := e.catalog.Weather[e.rng.IntN(len(e.catalog.Weather))]
	changed := w.Name != st.CurrentWeather
	st.CurrentWeather = w.Name
	st.WeatherLastChange = now
	if changed {
		e.emit(EventWeatherChanged, w.Name, "")
	}
	return changed
}

// UpdateBiomeAndWeather rolls the independent low-odds biome and weather
// events. A biome change is recorded in visited_biomes and visit_log.
func (e *Engine) UpdateBiomeAndWeather() {
	st := e.state
	set := e.catalog.Settings

	if e.rng.IntN(set.BiomeEventOdds) == 0 {
		b := e.catalog.Biomes[e.rng.IntN(len(e.catalog.Biomes))]
		if b.Name != st.CurrentBiome {
			st.CurrentBiome = b.Name
			if st.VisitedBiomes == nil {
				st.VisitedBiomes = make(map[string]bool)
			}
			st.VisitedBiomes[b.Name] = true
			st.appendVisitLog(VisitLogEntry{At: e.now(), Biome: b.Name}, set.VisitLogCap)
			e.emit(EventBiomeChanged, b.Name, "")
			e.logger.Debug("biome changed", "biome", b.Name)
		}
	}

	if e.rng.IntN(set.WeatherEventOdds) == 0 {
		w := e.catalog.Weather[e.rng.IntN(len(e.catalog.Weather))]
		if w.Name != st.CurrentWeather {
			st.CurrentWeather = w.Name
			e.emit(EventWeatherChanged, w.Name, "")
		}
	}
}

// WeatherChangeIn returns the seconds left until the weather interval
// elapses. It is 0 when the next tick will pick a new weather.
func (e *Engine) WeatherChangeIn() float64 {
	last := e.state.WeatherLastChange
	if last == 0 {
		return 0
	}
	return max(0, last+e.catalog.Settings.WeatherIntervalSeconds-e.now())
}
