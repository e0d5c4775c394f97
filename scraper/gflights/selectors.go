package gflights

// Locator strategies for flight result rows, tried in order; the first
// selector that matches any nodes wins. Google Flights markup is
// version-unstable, so one brittle selector is not enough.
var listingSelectors = []string{
	`div[role="listitem"]`,
	`div[class*="U3gSDe"]`,
	`li[class*="pIav2d"]`,
}

// listingTextScript returns the visible text of every node matching one
// selector, in document order.
const listingTextScript = `
	(function(sel) {
		var texts = [];
		document.querySelectorAll(sel).forEach(function(node) {
			texts.push(node.innerText);
		});
		return texts;
	})(%q)
`
