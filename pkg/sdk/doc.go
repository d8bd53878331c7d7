// Package epproxy provides a Go client for the search proxy's HTTP API.
//
// The client mirrors the query surface the proxy accepts from front-end
// integrations: a search term, pagination, ordering, and filter
// parameters, with filters combined under a global relation.
//
//	client, _ := epproxy.New("https://search.example.com",
//	    epproxy.WithLanguage("fr"),
//	)
//	res, _ := client.Search(ctx, epproxy.Params{
//	    Term:      "shoes",
//	    PostTypes: []string{"post", "page"},
//	    Taxonomies: []epproxy.TaxonomyParam{
//	        {Slug: "category", TermIDs: []string{"11", "12"}},
//	    },
//	    Relation: "and",
//	})
//	for _, hit := range res.Hits.Hits {
//	    fmt.Println(hit.ID, hit.Highlight["post_title"])
//	}
package epproxy
