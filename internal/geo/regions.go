package geo

import "fmt"

// ordinalFR returns the French ordinal used in arrondissement names.
func ordinalFR(n int) string {
	if n == 1 {
		return "1er"
	}
	return fmt.Sprintf("%de", n)
}

// parisDistricts builds the 20 Paris arrondissement units (INSEE codes
// 75101-75120).
func parisDistricts() []RegionDefinition {
	out := make([]RegionDefinition, 0, 20)
	for n := 1; n <= 20; n++ {
		ord := ordinalFR(n)
		out = append(out, RegionDefinition{
			Code: fmt.Sprintf("751%02d", n),
			Name: fmt.Sprintf("Paris %s Arrondissement", ord),
			Kind: KindDistrict,
			Cities: []CityDef{{
				Name: fmt.Sprintf("Paris %s", ord),
				Aliases: []string{
					fmt.Sprintf("%s arrondissement", ord),
					fmt.Sprintf("paris %d", n),
					fmt.Sprintf("750%02d", n),
				},
			}},
		})
	}
	return out
}

// DefaultHierarchy returns the built-in Île-de-France reference table: the
// city of Paris, its 20 arrondissements, and the seven surrounding
// departments with their principal communes. The returned value is
// constructed fresh on each call; callers treat it as immutable and pass it
// explicitly into the resolver and aggregator.
func DefaultHierarchy() []RegionDefinition {
	hierarchy := []RegionDefinition{
		{
			Code: "75", Name: "Paris", Kind: KindDepartment,
			Cities: []CityDef{{Name: "Paris", Aliases: []string{"Paname"}}},
		},
	}
	hierarchy = append(hierarchy, parisDistricts()...)
	hierarchy = append(hierarchy,
		RegionDefinition{
			Code: "77", Name: "Seine-et-Marne", Kind: KindDepartment,
			Cities: []CityDef{
				{Name: "Meaux"},
				{Name: "Melun"},
				{Name: "Chelles"},
				{Name: "Pontault-Combault"},
				{Name: "Savigny-le-Temple"},
				{Name: "Champs-sur-Marne"},
				{Name: "Villeparisis"},
				{Name: "Torcy"},
				{Name: "Combs-la-Ville"},
				{Name: "Lagny-sur-Marne", Short: "Lagny"},
				{Name: "Fontainebleau"},
				{Name: "Bussy-Saint-Georges"},
			},
		},
		RegionDefinition{
			Code: "78", Name: "Yvelines", Kind: KindDepartment,
			Cities: []CityDef{
				{Name: "Versailles"},
				{Name: "Sartrouville"},
				{Name: "Mantes-la-Jolie"},
				{Name: "Saint-Germain-en-Laye", Short: "Saint-Germain"},
				{Name: "Poissy"},
				{Name: "Montigny-le-Bretonneux"},
				{Name: "Conflans-Sainte-Honorine", Short: "Conflans"},
				{Name: "Les Mureaux"},
				{Name: "Plaisir"},
				{Name: "Chatou"},
				{Name: "Houilles"},
				{Name: "Trappes"},
			},
		},
		RegionDefinition{
			Code: "91", Name: "Essonne", Kind: KindDepartment,
			Cities: []CityDef{
				{Name: "Évry-Courcouronnes", Short: "Évry", Aliases: []string{"Evry"}},
				{Name: "Corbeil-Essonnes", Short: "Corbeil"},
				{Name: "Massy"},
				{Name: "Savigny-sur-Orge"},
				{Name: "Sainte-Geneviève-des-Bois"},
				{Name: "Palaiseau"},
				{Name: "Viry-Châtillon"},
				{Name: "Athis-Mons"},
				{Name: "Vigneux-sur-Seine"},
				{Name: "Draveil"},
				{Name: "Yerres"},
				{Name: "Brunoy"},
			},
		},
		RegionDefinition{
			Code: "92", Name: "Hauts-de-Seine", Kind: KindDepartment,
			Cities: []CityDef{
				{Name: "Boulogne-Billancourt", Short: "Boulogne"},
				{Name: "Nanterre"},
				{Name: "Asnières-sur-Seine", Short: "Asnières"},
				{Name: "Colombes"},
				{Name: "Courbevoie"},
				{Name: "Rueil-Malmaison", Short: "Rueil"},
				{Name: "Issy-les-Moulineaux", Short: "Issy"},
				{Name: "Levallois-Perret", Short: "Levallois"},
				{Name: "Antony"},
				{Name: "Neuilly-sur-Seine", Short: "Neuilly"},
				{Name: "Clichy"},
				{Name: "Montrouge"},
				{Name: "Suresnes"},
				{Name: "Puteaux"},
				{Name: "Gennevilliers"},
				{Name: "Clamart"},
			},
		},
		RegionDefinition{
			Code: "93", Name: "Seine-Saint-Denis", Kind: KindDepartment,
			Cities: []CityDef{
				{Name: "Saint-Denis"},
				{Name: "Montreuil"},
				{Name: "Aubervilliers"},
				{Name: "Aulnay-sous-Bois", Short: "Aulnay"},
				{Name: "Drancy"},
				{Name: "Noisy-le-Grand"},
				{Name: "Pantin"},
				{Name: "Bondy"},
				{Name: "Le Blanc-Mesnil", Short: "Blanc-Mesnil"},
				{Name: "Épinay-sur-Seine", Short: "Épinay"},
				{Name: "Saint-Ouen-sur-Seine", Short: "Saint-Ouen"},
				{Name: "Sevran"},
				{Name: "Bobigny"},
				{Name: "Rosny-sous-Bois", Short: "Rosny"},
				{Name: "La Courneuve"},
				{Name: "Livry-Gargan"},
			},
		},
		RegionDefinition{
			Code: "94", Name: "Val-de-Marne", Kind: KindDepartment,
			Cities: []CityDef{
				{Name: "Créteil"},
				{Name: "Vitry-sur-Seine", Short: "Vitry"},
				{Name: "Champigny-sur-Marne", Short: "Champigny"},
				{Name: "Saint-Maur-des-Fossés", Short: "Saint-Maur"},
				{Name: "Ivry-sur-Seine", Short: "Ivry"},
				{Name: "Villejuif"},
				{Name: "Maisons-Alfort"},
				{Name: "Fontenay-sous-Bois", Short: "Fontenay"},
				{Name: "Vincennes"},
				{Name: "Alfortville"},
				{Name: "Choisy-le-Roi"},
				{Name: "Nogent-sur-Marne", Short: "Nogent"},
			},
		},
		RegionDefinition{
			Code: "95", Name: "Val-d'Oise", Kind: KindDepartment,
			Cities: []CityDef{
				{Name: "Argenteuil"},
				{Name: "Cergy", Aliases: []string{"Cergy-Pontoise"}},
				{Name: "Sarcelles"},
				{Name: "Garges-lès-Gonesse"},
				{Name: "Franconville"},
				{Name: "Goussainville"},
				{Name: "Pontoise"},
				{Name: "Bezons"},
				{Name: "Ermont"},
				{Name: "Villiers-le-Bel"},
				{Name: "Taverny"},
				{Name: "Gonesse"},
			},
		},
	)
	return hierarchy
}
