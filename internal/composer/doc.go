// Package composer builds, validates and caches target class definitions.
//
// A Composer turns class contexts into frozen definitions. Lookups take a
// short lock; builds and validation run outside it, so two callers asking
// for the same uncached context may both build. The first result installed
// wins and every caller receives that instance. Failed builds are never
// stored.
//
//	c, err := composer.New(graph, composer.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//
//	def, err := c.GetDefinition(ctx, cc)
//	var verr *composer.ValidationError
//	if errors.As(err, &verr) {
//		fmt.Println(verr.Log.Summary())
//	}
package composer
