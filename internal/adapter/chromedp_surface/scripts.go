package chromedp_surface

// documentReadyJS is true once the injected document finished loading.
const documentReadyJS = `document.readyState === "complete"`

// mapEmbedsReadyJS is true when no map iframe is pending. Cross-origin frames
// cannot be inspected and count as ready.
const mapEmbedsReadyJS = `(() => {
	const frames = document.querySelectorAll('iframe[src*="google.com/maps"], iframe[src*="maps.google.com"]');
	return Array.from(frames).every(frame => {
		try {
			return !!(frame.contentDocument || frame.contentWindow);
		} catch (e) {
			return true;
		}
	});
})()`

// neutralizeJS disables motion, unlocks root scrolling and flattens every
// fixed or sticky element. It returns the number of elements rewritten by the
// computed-style scan, which walks the whole tree once.
const neutralizeJS = `(() => {
	const style = document.createElement('style');
	style.textContent = ` + "`" + `
		*, *::before, *::after {
			animation-duration: 0s !important;
			animation-delay: 0s !important;
			transition-duration: 0s !important;
			transition-delay: 0s !important;
		}
		html, body {
			overflow: auto !important;
			height: auto !important;
			min-height: 100vh !important;
		}
		.header, .navbar, nav,
		[class*="nav"], [class*="header"], [class*="sticky"], [class*="fixed"] {
			position: static !important;
			top: auto !important;
			left: auto !important;
			right: auto !important;
			z-index: auto !important;
		}
		header, .site-header, .main-header, .top-bar, .navigation, .main-nav {
			position: static !important;
			top: auto !important;
			left: auto !important;
			right: auto !important;
		}
	` + "`" + `;
	(document.head || document.documentElement).appendChild(style);

	let fixed = 0;
	document.querySelectorAll('*').forEach(el => {
		const position = window.getComputedStyle(el).position;
		if (position === 'fixed' || position === 'sticky') {
			el.style.position = 'static';
			el.style.top = 'auto';
			el.style.left = 'auto';
			el.style.right = 'auto';
			el.style.bottom = 'auto';
			fixed++;
		}
	});
	return fixed;
})()`

// revealJS forces scroll-triggered content visible and returns to the top.
// It returns the number of elements revealed.
const revealJS = `(() => {
	let revealed = 0;
	document.querySelectorAll('.reveal-element, .reveal-left, .reveal-right').forEach(el => {
		el.classList.add('revealed');
		el.style.opacity = '1';
		el.style.transform = 'none';
		el.style.visibility = 'visible';
		revealed++;
	});
	document.querySelectorAll('section').forEach(section => {
		section.style.opacity = '1';
		section.style.visibility = 'visible';
		revealed++;
	});
	window.scrollTo(0, 0);
	return revealed;
})()`

// probeJS measures the document and runs a scroll-and-restore smoke test.
const probeJS = `(() => {
	const body = document.body;
	const html = document.documentElement;
	const pageHeight = Math.max(
		body ? body.scrollHeight : 0,
		body ? body.offsetHeight : 0,
		html.clientHeight,
		html.scrollHeight,
		html.offsetHeight
	);
	const initialScroll = window.pageYOffset || html.scrollTop;
	window.scrollTo(0, 100);
	const testScroll = window.pageYOffset || html.scrollTop;
	window.scrollTo(0, initialScroll);
	return {
		pageHeight: pageHeight,
		bodyHeight: body ? body.scrollHeight : 0,
		htmlHeight: html.scrollHeight,
		clientHeight: html.clientHeight,
		initialScroll: Math.round(initialScroll),
		testScroll: Math.round(testScroll),
		canScroll: testScroll > initialScroll
	};
})()`
